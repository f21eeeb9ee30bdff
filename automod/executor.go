package automod

import (
	"fmt"
)

// Terminal state of one message's pipeline run.
type Outcome string

const (
	OutcomeBypassed        Outcome = "bypassed"
	OutcomeNoAction        Outcome = "no-action"
	OutcomeExecuted        Outcome = "executed"
	OutcomePartiallyFailed Outcome = "partially-failed"
)

// One of the three fixed execution stages.
type Stage string

const (
	StageMessageAction Stage = "message-action"
	StageUserAction    Stage = "user-action"
	StageReport        Stage = "report"
)

type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepFailed    StepStatus = "failed"
)

// Outcome of a single execution stage. Description is the human-readable
// action line ("Message deleted", "User banned", ...) used in reports.
type StepResult struct {
	Stage       Stage
	Status      StepStatus
	Description string
	Err         error
}

// Aggregate outcome of executing one consolidated action. Steps holds one
// entry per stage that was attempted, in execution order, so partial
// execution state is observable even on failure.
type ExecutionReport struct {
	Outcome Outcome
	Steps   []StepResult
}

func (r *ExecutionReport) failedSteps() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			n++
		}
	}
	return n
}

// Returned when an execution stage failed in a way the caller must see.
// Under the lenient policy this engine implements, that is only report
// delivery: enforcement failures are recorded in the ExecutionReport and the
// pipeline keeps going so the moderation channel still hears about them.
type ExecutionError struct {
	Stage Stage
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Applies the consolidated action in fixed order: message action, then user
// action, then report delivery. The order must not change: the report
// checklist describes what the earlier stages did.
func (eng *Engine) executeActions(c *MessageContext) (*ExecutionReport, error) {
	ctx := c.Ctx
	evt := &c.Message
	eff := c.effects
	rep := &ExecutionReport{Outcome: OutcomeExecuted}

	if eff.Message != nil {
		step := StepResult{Stage: StageMessageAction, Status: StepSucceeded, Description: eff.Message.String()}
		switch eff.Message.Kind {
		case MessageActionDelete:
			if err := eng.Platform.DeleteMessage(ctx, evt.ChannelID, evt.MessageID); err != nil {
				step.Status = StepFailed
				step.Err = err
				c.Logger.Error("deleting message failed", "err", err)
				actionErrorCount.WithLabelValues(string(StageMessageAction)).Inc()
			} else {
				actionCount.WithLabelValues(string(MessageActionDelete)).Inc()
			}
		}
		rep.Steps = append(rep.Steps, step)
	}

	if eff.User != nil {
		step := StepResult{Stage: StageUserAction, Status: StepSucceeded, Description: eff.User.String()}
		var err error
		switch eff.User.Kind {
		case UserActionMute:
			until := eng.now().Add(eff.User.Duration)
			err = eng.Platform.MuteUser(ctx, evt.GuildID, evt.Author.ID, until)
		case UserActionBan:
			reason := eff.ReportText()
			if reason == "" {
				reason = "No reason provided"
			}
			err = eng.Platform.BanUser(ctx, evt.GuildID, evt.Author.ID, reason)
		}
		if err != nil {
			step.Status = StepFailed
			step.Err = err
			c.Logger.Error("user action failed", "kind", eff.User.Kind, "err", err)
			actionErrorCount.WithLabelValues(string(StageUserAction)).Inc()
		} else {
			actionCount.WithLabelValues(string(eff.User.Kind)).Inc()
		}
		rep.Steps = append(rep.Steps, step)
	}

	if text := eff.ReportText(); text != "" {
		step := StepResult{Stage: StageReport, Status: StepSucceeded, Description: "Report sent"}
		payload := buildReportPayload(evt, text, rep.Steps, eng.now())
		if err := eng.Platform.SendReport(ctx, c.settings.ModerationChannelID, payload); err != nil {
			step.Status = StepFailed
			step.Err = err
			rep.Steps = append(rep.Steps, step)
			rep.Outcome = OutcomePartiallyFailed
			c.Logger.Error("sending report failed", "err", err)
			actionErrorCount.WithLabelValues(string(StageReport)).Inc()
			// report delivery failure is otherwise invisible to the operator
			return rep, &ExecutionError{Stage: StageReport, Err: err}
		}
		reportsSent.Inc()
		rep.Steps = append(rep.Steps, step)
	}

	if rep.failedSteps() > 0 {
		rep.Outcome = OutcomePartiallyFailed
	}
	return rep, nil
}
