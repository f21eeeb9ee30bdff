package automod

import (
	"context"
	"log/slog"
)

// The interface exposed to rules while evaluating a single message. Wraps the
// event, the settings snapshot taken at the start of evaluation, and the
// effects accumulator.
type MessageContext struct {
	// actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// any errors encountered while reading counter/set state get rolled up
	// in this nullable field
	Err error
	// slog handle with message-specific fields pre-populated; never nil
	Logger *slog.Logger

	Message MessageEvent

	engine   *Engine
	settings *Settings
	effects  *Effects
}

func NewMessageContext(ctx context.Context, eng *Engine, settings *Settings, evt *MessageEvent) MessageContext {
	return MessageContext{
		Ctx: ctx,
		Logger: eng.Logger.With(
			"guild", evt.GuildID,
			"channel", evt.ChannelID,
			"message", evt.MessageID,
			"author", evt.Author.ID,
		),
		Message:  *evt,
		engine:   eng,
		settings: settings,
		effects:  &Effects{},
	}
}

// The settings snapshot this evaluation runs against. Stable for the lifetime
// of the context even if the store is swapped concurrently.
func (c *MessageContext) Settings() *Settings {
	return c.settings
}

// Folds a candidate action into the consolidated action for this message,
// applying the configured mute-stacking policy.
func (c *MessageContext) TakeAction(cand CandidateAction) {
	c.effects.Merge(cand, c.settings.StackMuteDurations())
}

// request external state via engine (indirect) ======

func (c *MessageContext) GetCount(name, val, period string) int {
	out, err := c.engine.Counters.GetCount(c.Ctx, name, val, period)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return 0
	}
	return out
}

func (c *MessageContext) GetCountDistinct(name, bucket, period string) int {
	out, err := c.engine.Counters.GetCountDistinct(c.Ctx, name, bucket, period)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return 0
	}
	return out
}

func (c *MessageContext) InSet(name, val string) bool {
	out, err := c.engine.Sets.InSet(c.Ctx, name, val)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	return out
}

// update effects (indirect) ======

func (c *MessageContext) Increment(name, val string) {
	c.effects.Increment(name, val)
}

func (c *MessageContext) IncrementPeriod(name, val, period string) {
	c.effects.IncrementPeriod(name, val, period)
}

func (c *MessageContext) IncrementDistinct(name, bucket, val string) {
	c.effects.IncrementDistinct(name, bucket, val)
}
