package automod

import (
	"context"
	"time"
)

type ChannelKind string

const (
	ChannelKindText  ChannelKind = "text"
	ChannelKindOther ChannelKind = "other"
)

// Channel metadata, as much of it as the engine needs for validation.
type Channel struct {
	ID   string
	Name string
	Kind ChannelKind
}

// The engine's outbound surface: enforcement verbs plus channel lookup for
// startup validation. Implementations talk to the real platform API and carry
// their own timeout/retry policy; the engine treats each call as fail-once.
type PlatformClient interface {
	GetChannel(ctx context.Context, channelID string) (*Channel, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	// MuteUser issues a timed communication restriction lasting until the
	// given instant.
	MuteUser(ctx context.Context, guildID, userID string, until time.Time) error
	// BanUser permanently removes the user; reason (may be empty) is attached
	// as the audit-log justification.
	BanUser(ctx context.Context, guildID, userID, reason string) error
	SendReport(ctx context.Context, channelID string, report *ReportPayload) error
}
