package rules

import (
	"context"
	"fmt"
	"testing"

	"github.com/warden-bot/warden/automod"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatEvent(n int, content string) *automod.MessageEvent {
	return &automod.MessageEvent{
		MessageID: fmt.Sprintf("msg-%d", n),
		GuildID:   "guild-1",
		ChannelID: "chan-general",
		Author:    automod.Author{ID: "user-1"},
		Content:   content,
	}
}

func TestRepeatMessageRule(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := automod.EngineTestFixture()
	eng.Rules = automod.RuleSet{MessageRules: []automod.MessageRuleFunc{RepeatMessageRule}}
	settings := eng.Settings.Snapshot()
	settings.Rules.RepeatMessage = &automod.RepeatMessageSettings{Count: 3}
	settings.Normalize()
	platform := eng.Platform.(*automod.PlatformMock)

	for i := 0; i < 2; i++ {
		rep, err := eng.ProcessMessage(ctx, repeatEvent(i, "buy cheap stuff now"))
		assert.NoError(err)
		assert.Equal(automod.OutcomeNoAction, rep.Outcome)
	}

	// third identical message triggers
	rep, err := eng.ProcessMessage(ctx, repeatEvent(2, "buy cheap stuff now"))
	assert.NoError(err)
	assert.Equal(automod.OutcomeExecuted, rep.Outcome)
	require.Len(t, platform.Reports, 1)
	assert.Contains(platform.Reports[0].Payload.Body, "Repeated message (3 identical messages in the last hour)")

	// different content starts its own count
	rep, err = eng.ProcessMessage(ctx, repeatEvent(3, "something else entirely"))
	assert.NoError(err)
	assert.Equal(automod.OutcomeNoAction, rep.Outcome)
}

func TestRepeatMessageRuleIgnoresEmptyContent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := automod.EngineTestFixture()
	eng.Rules = automod.RuleSet{MessageRules: []automod.MessageRuleFunc{RepeatMessageRule}}
	settings := eng.Settings.Snapshot()
	settings.Rules.RepeatMessage = &automod.RepeatMessageSettings{Count: 2}
	settings.Normalize()

	for i := 0; i < 4; i++ {
		rep, err := eng.ProcessMessage(ctx, repeatEvent(i, ""))
		assert.NoError(err)
		assert.Equal(automod.OutcomeNoAction, rep.Outcome)
	}
}
