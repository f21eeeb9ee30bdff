package automod

import (
	"context"
	"log/slog"
	"time"

	"github.com/warden-bot/warden/automod/countstore"
	"github.com/warden-bot/warden/automod/setstore"
)

// Runtime for evaluating messages against rules and applying the resulting
// consolidated action.
//
// Fields are expected to be non-nil; use EngineTestFixture or cmd/warden
// wiring rather than constructing by hand.
type Engine struct {
	Logger   *slog.Logger
	Settings *SettingsStore
	Rules    RuleSet
	Counters countstore.CountStore
	Sets     setstore.SetStore
	Platform PlatformClient
	// clock override for tests; nil means time.Now
	Now func() time.Time
}

// Runs the full pipeline for one message: bypass check, rule evaluation with
// incremental merge, then execution of the consolidated action. Pure and
// stateless apart from the settings snapshot and counter reads, so concurrent
// calls are independent.
//
// The returned report always describes what happened (including which steps
// failed); the error is non-nil only when report delivery itself failed, or
// when rule dispatch broke down.
func (eng *Engine) ProcessMessage(ctx context.Context, evt *MessageEvent) (report *ExecutionReport, err error) {
	start := eng.now()
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("automod event execution exception", "err", r, "message", evt.MessageID)
			report = &ExecutionReport{Outcome: OutcomeNoAction}
		}
		messageProcessDuration.Observe(eng.now().Sub(start).Seconds())
	}()

	settings := eng.Settings.Snapshot()

	if settings.IsBypassed(evt) {
		eng.Logger.Debug("message bypassed", "message", evt.MessageID, "author", evt.Author.ID)
		messageProcessCount.WithLabelValues(string(OutcomeBypassed)).Inc()
		return &ExecutionReport{Outcome: OutcomeBypassed}, nil
	}

	c := NewMessageContext(ctx, eng, settings, evt)
	if err := eng.Rules.CallMessageRules(&c); err != nil {
		messageErrorCount.WithLabelValues("rules").Inc()
		return nil, err
	}
	if c.Err != nil {
		// counter/set reads are advisory; a failed read must not block enforcement
		c.Logger.Warn("state read failed during rule evaluation", "err", c.Err)
	}
	eng.canonicalLogLine(&c)

	if err := eng.persistCounters(ctx, c.effects); err != nil {
		c.Logger.Warn("persisting counters failed", "err", err)
	}

	if !c.effects.Triggered() {
		messageProcessCount.WithLabelValues(string(OutcomeNoAction)).Inc()
		return &ExecutionReport{Outcome: OutcomeNoAction}, nil
	}

	report, err = eng.executeActions(&c)
	messageProcessCount.WithLabelValues(string(report.Outcome)).Inc()
	return report, err
}

func (eng *Engine) persistCounters(ctx context.Context, eff *Effects) error {
	for _, ref := range eff.CounterIncrements {
		if ref.Period != nil {
			if err := eng.Counters.IncrementPeriod(ctx, ref.Name, ref.Val, *ref.Period); err != nil {
				return err
			}
		} else {
			if err := eng.Counters.Increment(ctx, ref.Name, ref.Val); err != nil {
				return err
			}
		}
	}
	for _, ref := range eff.CounterDistinctIncrements {
		if err := eng.Counters.IncrementDistinct(ctx, ref.Name, ref.Bucket, ref.Val); err != nil {
			return err
		}
	}
	return nil
}

// single log line summarizing rule evaluation of one message
func (eng *Engine) canonicalLogLine(c *MessageContext) {
	c.Logger.Info("automod-message",
		"triggered", c.effects.Triggered(),
		"reportFragments", len(c.effects.ReportLines),
		"messageAction", c.effects.Message,
		"userAction", c.effects.User,
	)
}

func (eng *Engine) now() time.Time {
	if eng.Now != nil {
		return eng.Now()
	}
	return time.Now()
}
