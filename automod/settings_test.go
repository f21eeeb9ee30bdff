package automod

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	assert := assert.New(t)

	var s Settings
	s.Normalize()

	assert.True(s.StackMuteDurations())
	require.NotNil(t, s.Rules.AttachmentSpam)
	assert.Equal(DefaultAttachmentSpamCount, s.Rules.AttachmentSpam.Count)

	actions := s.Rules.AttachmentSpam.Actions
	require.NotNil(t, actions)
	cand := actions.Candidate("some reason")
	assert.Equal("some reason", cand.Report)
	require.NotNil(t, cand.Message)
	assert.Equal(MessageActionDelete, cand.Message.Kind)
	require.NotNil(t, cand.User)
	assert.Equal(UserActionMute, cand.User.Kind)
	assert.Equal(DefaultMuteDuration, cand.User.Duration)
}

func TestSettingsParsing(t *testing.T) {
	assert := assert.New(t)

	raw := `{
		"moderation_channel": "chan-mod",
		"stack_timeouts": false,
		"bypass": {"users": ["user-1"], "roles": ["role-9"]},
		"rules": {
			"attachment_spam": {
				"count": 6,
				"actions": {"report": false, "user": {"kind": "ban"}}
			}
		}
	}`
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	s.Normalize()

	assert.False(s.StackMuteDurations())
	assert.Equal(6, s.Rules.AttachmentSpam.Count)

	// an explicit actions block with message omitted means no message action
	cand := s.Rules.AttachmentSpam.Actions.Candidate("reason")
	assert.Equal("", cand.Report)
	assert.Nil(cand.Message)
	require.NotNil(t, cand.User)
	assert.Equal(UserActionBan, cand.User.Kind)
}

func TestBypass(t *testing.T) {
	assert := assert.New(t)

	s := Settings{
		Bypass: &BypassSettings{
			Users: []string{"user-1"},
			Roles: []string{"role-9"},
		},
	}

	assert.True(s.IsBypassed(&MessageEvent{Author: Author{ID: "user-1"}}))
	assert.True(s.IsBypassed(&MessageEvent{Author: Author{ID: "user-2"}, AuthorRoles: []string{"role-3", "role-9"}}))
	assert.False(s.IsBypassed(&MessageEvent{Author: Author{ID: "user-2"}, AuthorRoles: []string{"role-3"}}))

	// absent bypass config never bypasses
	empty := Settings{}
	assert.False(empty.IsBypassed(&MessageEvent{Author: Author{ID: "user-1"}}))
}

func TestSettingsStoreSwap(t *testing.T) {
	assert := assert.New(t)

	a := &Settings{ModerationChannelID: "chan-a"}
	b := &Settings{ModerationChannelID: "chan-b"}

	st := NewSettingsStore(a)
	snap := st.Snapshot()
	st.Swap(b)

	// the held snapshot is unaffected by the swap
	assert.Equal("chan-a", snap.ModerationChannelID)
	assert.Equal("chan-b", st.Snapshot().ModerationChannelID)
}

func TestValidateSettings(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	platform := NewPlatformMock()
	platform.Channels["chan-voice"] = &Channel{ID: "chan-voice", Kind: ChannelKindOther}

	s := &Settings{ModerationChannelID: "chan-mod"}
	assert.NoError(ValidateSettings(ctx, s, platform))

	assert.Error(ValidateSettings(ctx, &Settings{}, platform))
	assert.Error(ValidateSettings(ctx, &Settings{ModerationChannelID: "chan-missing"}, platform))
	assert.Error(ValidateSettings(ctx, &Settings{ModerationChannelID: "chan-voice"}, platform))
}
