package rules

import (
	"context"
	"fmt"
	"testing"

	"github.com/warden-bot/warden/automod"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spamEvent(attachments int, content string) *automod.MessageEvent {
	evt := &automod.MessageEvent{
		MessageID: "msg-1",
		GuildID:   "guild-1",
		ChannelID: "chan-general",
		Author:    automod.Author{ID: "user-1", Username: "spammer"},
		Content:   content,
	}
	for i := 0; i < attachments; i++ {
		evt.Attachments = append(evt.Attachments, automod.Attachment{URL: fmt.Sprintf("https://cdn.example.com/file-%d.png", i)})
	}
	return evt
}

func TestAttachmentSpamRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := automod.EngineTestFixture()
	eng.Rules = automod.RuleSet{MessageRules: []automod.MessageRuleFunc{AttachmentSpamRule}}
	platform := eng.Platform.(*automod.PlatformMock)

	rep, err := eng.ProcessMessage(ctx, spamEvent(3, ""))
	assert.NoError(err)
	assert.Equal(automod.OutcomeNoAction, rep.Outcome)

	rep, err = eng.ProcessMessage(ctx, spamEvent(4, "with text"))
	assert.NoError(err)
	assert.Equal(automod.OutcomeNoAction, rep.Outcome)

	rep, err = eng.ProcessMessage(ctx, spamEvent(4, ""))
	assert.NoError(err)
	assert.Equal(automod.OutcomeExecuted, rep.Outcome)
	require.Len(t, platform.Reports, 1)
	assert.Contains(platform.Reports[0].Payload.Body, "Attachment spam (4), without message content")
}

func TestAttachmentSpamRuleDisabled(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := automod.EngineTestFixture()
	eng.Rules = automod.RuleSet{MessageRules: []automod.MessageRuleFunc{AttachmentSpamRule}}
	eng.Settings.Snapshot().Rules.AttachmentSpam = nil
	platform := eng.Platform.(*automod.PlatformMock)

	rep, err := eng.ProcessMessage(ctx, spamEvent(10, ""))
	assert.NoError(err)
	assert.Equal(automod.OutcomeNoAction, rep.Outcome)
	assert.Equal(0, platform.CallCount())
}
