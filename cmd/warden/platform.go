package main

import (
	"context"
	"time"

	"github.com/warden-bot/warden/automod"
	"github.com/warden-bot/warden/discord"
)

var _ automod.PlatformClient = (*discordPlatform)(nil)

// Adapts the Discord REST client to the engine's platform interface. The
// engine only supplies textual report content; embed layout happens here.
type discordPlatform struct {
	client *discord.Client
}

func (p *discordPlatform) GetChannel(ctx context.Context, channelID string) (*automod.Channel, error) {
	ch, err := p.client.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	kind := automod.ChannelKindOther
	if ch.IsTextChannel() {
		kind = automod.ChannelKindText
	}
	return &automod.Channel{ID: ch.ID, Name: ch.Name, Kind: kind}, nil
}

func (p *discordPlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return p.client.DeleteMessage(ctx, channelID, messageID)
}

func (p *discordPlatform) MuteUser(ctx context.Context, guildID, userID string, until time.Time) error {
	return p.client.MuteUser(ctx, guildID, userID, until)
}

func (p *discordPlatform) BanUser(ctx context.Context, guildID, userID, reason string) error {
	return p.client.BanUser(ctx, guildID, userID, reason)
}

func (p *discordPlatform) SendReport(ctx context.Context, channelID string, report *automod.ReportPayload) error {
	embed := discord.Embed{
		Title:       report.Title,
		Description: report.Body,
		Color:       report.Color,
		Author: &discord.EmbedAuthor{
			Name:    report.AuthorName,
			IconURL: report.AuthorIconURL,
		},
		Footer: &discord.EmbedFooter{
			Text: report.Footer,
		},
		Timestamp: report.Timestamp.UTC().Format(time.RFC3339),
	}
	return p.client.CreateMessage(ctx, channelID, []discord.Embed{embed})
}
