package discord

import (
	"fmt"
)

// Subset of the Discord channel object the daemon cares about.
type Channel struct {
	ID   string `json:"id"`
	Type int    `json:"type"`
	Name string `json:"name"`
}

// Discord channel types (only the ones we branch on).
const (
	ChannelTypeGuildText         = 0
	ChannelTypeGuildVoice        = 2
	ChannelTypeGuildAnnouncement = 5
)

// True for channel types which can receive plain messages.
func (c *Channel) IsTextChannel() bool {
	return c.Type == ChannelTypeGuildText || c.Type == ChannelTypeGuildAnnouncement
}

// Rich-embed payload for channel messages.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// Error response from the Discord API.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API error (HTTP %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}
