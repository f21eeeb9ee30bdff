package automod

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warden-bot/warden/automod/countstore"
	"github.com/warden-bot/warden/automod/setstore"
)

// In-memory PlatformClient which records every call and can be told to fail
// individual verbs. Intended for tests, both in this package and in rule
// packages.
type PlatformMock struct {
	mu sync.Mutex

	Deleted []DeletedMessage
	Muted   []MutedUser
	Banned  []BannedUser
	Reports []SentReport

	Channels map[string]*Channel

	DeleteErr error
	MuteErr   error
	BanErr    error
	ReportErr error
}

type DeletedMessage struct {
	ChannelID string
	MessageID string
}

type MutedUser struct {
	GuildID string
	UserID  string
	Until   time.Time
}

type BannedUser struct {
	GuildID string
	UserID  string
	Reason  string
}

type SentReport struct {
	ChannelID string
	Payload   *ReportPayload
}

func NewPlatformMock() *PlatformMock {
	return &PlatformMock{
		Channels: map[string]*Channel{
			"chan-mod": {ID: "chan-mod", Name: "mod-reports", Kind: ChannelKindText},
		},
	}
}

func (p *PlatformMock) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.Channels[channelID]
	if !ok {
		return nil, &ChannelNotFoundError{ChannelID: channelID}
	}
	return ch, nil
}

func (p *PlatformMock) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	p.Deleted = append(p.Deleted, DeletedMessage{ChannelID: channelID, MessageID: messageID})
	return nil
}

func (p *PlatformMock) MuteUser(ctx context.Context, guildID, userID string, until time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.MuteErr != nil {
		return p.MuteErr
	}
	p.Muted = append(p.Muted, MutedUser{GuildID: guildID, UserID: userID, Until: until})
	return nil
}

func (p *PlatformMock) BanUser(ctx context.Context, guildID, userID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.BanErr != nil {
		return p.BanErr
	}
	p.Banned = append(p.Banned, BannedUser{GuildID: guildID, UserID: userID, Reason: reason})
	return nil
}

func (p *PlatformMock) SendReport(ctx context.Context, channelID string, report *ReportPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ReportErr != nil {
		return p.ReportErr
	}
	p.Reports = append(p.Reports, SentReport{ChannelID: channelID, Payload: report})
	return nil
}

func (p *PlatformMock) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Deleted) + len(p.Muted) + len(p.Banned) + len(p.Reports)
}

type ChannelNotFoundError struct {
	ChannelID string
}

func (e *ChannelNotFoundError) Error() string {
	return "channel not found: " + e.ChannelID
}

// Engine wired with in-memory stores, a PlatformMock, default settings, and
// an empty rule set. Callers attach rules and adjust settings as needed; the
// mock is reachable via eng.Platform.(*PlatformMock).
func EngineTestFixture() *Engine {
	settings := &Settings{
		ModerationChannelID: "chan-mod",
	}
	settings.Normalize()
	return &Engine{
		Logger:   slog.Default(),
		Settings: NewSettingsStore(settings),
		Counters: countstore.NewMemCountStore(),
		Sets:     setstore.NewMemSetStore(),
		Platform: NewPlatformMock(),
	}
}

// Helper to access the private effects field from a context. Intended for use
// in test code, *not* from rules.
func ExtractEffects(c *MessageContext) *Effects {
	return c.effects
}
