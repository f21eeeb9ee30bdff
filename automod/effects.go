package automod

// Reference to a counter increment queued during rule execution, persisted in
// bulk after all rules have run.
type CounterRef struct {
	Name   string
	Val    string
	Period *string
}

type CounterDistinctRef struct {
	Name   string
	Bucket string
	Val    string
}

// Mutable container for all side-effects of rule execution against one
// message. Candidate actions from triggered rules are folded in one at a time
// via Merge; after the fold at most one message action and one user action
// survive.
type Effects struct {
	// Report fragments in rule-evaluation order, one bullet line each.
	ReportLines []string
	// Consolidated message action, or nil.
	Message *MessageAction
	// Consolidated user action, or nil.
	User *UserAction
	// Counters to increment after rule execution completes.
	CounterIncrements         []CounterRef
	CounterDistinctIncrements []CounterDistinctRef
}

// Folds one rule's candidate action into the accumulator.
//
// Report fragments concatenate in evaluation order. Message actions resolve
// through the rank table (first writer wins on equal rank). User actions
// escalate: a ban dominates a mute regardless of fold order; two mutes sum
// their durations when stackTimeouts is set, otherwise the first-seen
// duration is kept. Total over well-formed inputs; never fails.
func (e *Effects) Merge(cand CandidateAction, stackTimeouts bool) {
	if cand.Report != "" {
		e.ReportLines = append(e.ReportLines, cand.Report)
	}
	e.Message = mergeMessageAction(e.Message, cand.Message)
	e.User = mergeUserAction(e.User, cand.User, stackTimeouts)
}

func mergeMessageAction(cur, next *MessageAction) *MessageAction {
	if cur == nil {
		return next
	}
	if next == nil {
		return cur
	}
	if messageActionRank[next.Kind] > messageActionRank[cur.Kind] {
		return next
	}
	return cur
}

func mergeUserAction(cur, next *UserAction, stackTimeouts bool) *UserAction {
	if cur == nil {
		return next
	}
	if next == nil {
		return cur
	}
	if cur.Kind == UserActionBan {
		return cur
	}
	if next.Kind == UserActionBan {
		return next
	}
	// both mutes
	if stackTimeouts {
		return MuteUser(cur.Duration + next.Duration)
	}
	return cur
}

// True if any rule produced a report fragment or an action.
func (e *Effects) Triggered() bool {
	return len(e.ReportLines) > 0 || e.Message != nil || e.User != nil
}

// Report fragments rendered as a bulleted list, one line per fragment, in
// evaluation order. Empty string when no rule asked for a report.
func (e *Effects) ReportText() string {
	if len(e.ReportLines) == 0 {
		return ""
	}
	out := ""
	for i, line := range e.ReportLines {
		if i > 0 {
			out += "\n"
		}
		out += "- " + line
	}
	return out
}

// Enqueues the named counter to be incremented at the end of rule processing,
// for all time periods.
func (e *Effects) Increment(name, val string) {
	e.CounterIncrements = append(e.CounterIncrements, CounterRef{Name: name, Val: val})
}

// Same as Increment, but only for the indicated time period bucket.
func (e *Effects) IncrementPeriod(name, val, period string) {
	e.CounterIncrements = append(e.CounterIncrements, CounterRef{Name: name, Val: val, Period: &period})
}

// Enqueues a "distinct value" counter increment, for all time periods.
func (e *Effects) IncrementDistinct(name, bucket, val string) {
	e.CounterDistinctIncrements = append(e.CounterDistinctIncrements, CounterDistinctRef{Name: name, Bucket: bucket, Val: val})
}
