package automod

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// Process-wide moderation configuration. Loaded once at startup and replaced
// wholesale on reload; never mutated in place while evaluations are running.
type Settings struct {
	// channel which receives moderation reports
	ModerationChannelID string `json:"moderation_channel"`
	// when true, multiple mute-producing rules sum their durations; when
	// false the first-seen duration wins. Defaults to true.
	StackTimeouts *bool           `json:"stack_timeouts,omitempty"`
	Bypass        *BypassSettings `json:"bypass,omitempty"`
	Rules         RuleSettings    `json:"rules"`
}

// Actors exempt from all rule evaluation.
type BypassSettings struct {
	Users []string `json:"users,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Per-rule configuration. A nil entry disables the rule entirely.
type RuleSettings struct {
	AttachmentSpam *AttachmentSpamSettings `json:"attachment_spam,omitempty"`
	MentionSpam    *MentionSpamSettings    `json:"mention_spam,omitempty"`
	RepeatMessage  *RepeatMessageSettings  `json:"repeat_message,omitempty"`
	LinkSpam       *LinkSpamSettings       `json:"link_spam,omitempty"`
}

type AttachmentSpamSettings struct {
	// minimum attachment count to trigger on a message with no text content
	Count   int             `json:"count,omitempty"`
	Actions *ActionSettings `json:"actions,omitempty"`
}

type MentionSpamSettings struct {
	// distinct accounts mentioned per author per hour
	Count   int             `json:"count,omitempty"`
	Actions *ActionSettings `json:"actions,omitempty"`
}

type RepeatMessageSettings struct {
	// identical messages per author per hour
	Count   int             `json:"count,omitempty"`
	Actions *ActionSettings `json:"actions,omitempty"`
}

type LinkSpamSettings struct {
	// named set (in the engine's SetStore) holding banned link hosts
	SetName string          `json:"set_name,omitempty"`
	Actions *ActionSettings `json:"actions,omitempty"`
}

// Actions a rule takes when it triggers. Report defaults to enabled; message
// and user actions default to delete and a 60 second mute when the whole
// block is omitted from the rule config.
type ActionSettings struct {
	Report  *bool                  `json:"report,omitempty"`
	Message *MessageActionSettings `json:"message,omitempty"`
	User    *UserActionSettings    `json:"user,omitempty"`
}

type MessageActionSettings struct {
	// "delete"
	Kind string `json:"kind"`
}

type UserActionSettings struct {
	// "mute" or "ban"
	Kind         string `json:"kind"`
	DurationSecs int64  `json:"duration_secs,omitempty"`
}

const (
	DefaultAttachmentSpamCount = 4
	DefaultMentionSpamCount    = 40
	DefaultRepeatMessageCount  = 5
	DefaultLinkSpamSetName     = "banned-domains"
	DefaultMuteDuration        = 60 * time.Second
)

func defaultActionSettings() *ActionSettings {
	report := true
	return &ActionSettings{
		Report:  &report,
		Message: &MessageActionSettings{Kind: string(MessageActionDelete)},
		User:    &UserActionSettings{Kind: string(UserActionMute), DurationSecs: int64(DefaultMuteDuration.Seconds())},
	}
}

// Applies semantic defaults in place. Zero-valued thresholds mean "unset" and
// take the documented default; an entirely empty rules block enables
// attachment-spam with defaults, matching the documented out-of-box behavior.
func (s *Settings) Normalize() {
	if s.StackTimeouts == nil {
		t := true
		s.StackTimeouts = &t
	}
	if s.Rules == (RuleSettings{}) {
		s.Rules.AttachmentSpam = &AttachmentSpamSettings{}
	}
	if c := s.Rules.AttachmentSpam; c != nil {
		if c.Count == 0 {
			c.Count = DefaultAttachmentSpamCount
		}
		c.Actions = normalizeActions(c.Actions)
	}
	if c := s.Rules.MentionSpam; c != nil {
		if c.Count == 0 {
			c.Count = DefaultMentionSpamCount
		}
		c.Actions = normalizeActions(c.Actions)
	}
	if c := s.Rules.RepeatMessage; c != nil {
		if c.Count == 0 {
			c.Count = DefaultRepeatMessageCount
		}
		c.Actions = normalizeActions(c.Actions)
	}
	if c := s.Rules.LinkSpam; c != nil {
		if c.SetName == "" {
			c.SetName = DefaultLinkSpamSetName
		}
		c.Actions = normalizeActions(c.Actions)
	}
}

func normalizeActions(a *ActionSettings) *ActionSettings {
	if a == nil {
		return defaultActionSettings()
	}
	if a.Report == nil {
		report := true
		a.Report = &report
	}
	// an explicitly-present actions block with message or user omitted means
	// "no action of that kind", so no defaults beyond the report flag
	return a
}

func (s *Settings) StackMuteDurations() bool {
	if s.StackTimeouts == nil {
		return true
	}
	return *s.StackTimeouts
}

// Reports whether the message author is exempt from evaluation, either
// directly or through any of their roles. Absent bypass config never
// bypasses.
func (s *Settings) IsBypassed(evt *MessageEvent) bool {
	if s.Bypass == nil {
		return false
	}
	for _, uid := range s.Bypass.Users {
		if uid == evt.Author.ID {
			return true
		}
	}
	for _, role := range evt.AuthorRoles {
		for _, rid := range s.Bypass.Roles {
			if rid == role {
				return true
			}
		}
	}
	return false
}

// Builds the candidate action this config produces for a triggered rule.
// The report fragment is dropped when reporting is disabled, while message
// and user actions still fire.
func (a *ActionSettings) Candidate(reason string) CandidateAction {
	cand := CandidateAction{}
	if a.Report != nil && *a.Report {
		cand.Report = reason
	}
	if a.Message != nil && a.Message.Kind == string(MessageActionDelete) {
		cand.Message = DeleteMessage()
	}
	if a.User != nil {
		switch a.User.Kind {
		case string(UserActionBan):
			cand.User = BanUser()
		case string(UserActionMute):
			d := time.Duration(a.User.DurationSecs) * time.Second
			if d <= 0 {
				d = DefaultMuteDuration
			}
			cand.User = MuteUser(d)
		}
	}
	return cand
}

// Holds the active settings snapshot. Swaps are atomic from the evaluators'
// point of view: an in-flight evaluation keeps the snapshot it started with.
type SettingsStore struct {
	cur atomic.Pointer[Settings]
}

func NewSettingsStore(s *Settings) *SettingsStore {
	st := &SettingsStore{}
	st.cur.Store(s)
	return st
}

func (st *SettingsStore) Snapshot() *Settings {
	return st.cur.Load()
}

func (st *SettingsStore) Swap(s *Settings) {
	st.cur.Store(s)
}

// Reads and normalizes a settings file (JSON).
func LoadSettingsFile(p string) (*Settings, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// Semantic validation beyond shape: the moderation channel must exist and be
// a text channel. Fatal at startup; never runs mid-evaluation.
func ValidateSettings(ctx context.Context, s *Settings, platform PlatformClient) error {
	if s.ModerationChannelID == "" {
		return fmt.Errorf("moderation channel is not configured")
	}
	ch, err := platform.GetChannel(ctx, s.ModerationChannelID)
	if err != nil {
		return fmt.Errorf("resolving moderation channel %s: %w", s.ModerationChannelID, err)
	}
	if ch.Kind != ChannelKindText {
		return fmt.Errorf("moderation channel %s is not a text channel", s.ModerationChannelID)
	}
	return nil
}
