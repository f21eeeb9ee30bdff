package automod

// Rules are pure functions over the message context: they inspect the event
// (and counter/set state) and queue candidate actions. They never perform
// I/O against the platform and must not depend on evaluation order.
type MessageRuleFunc = func(c *MessageContext) error

// Holds the fixed, explicit list of rules to run, and dispatches events to
// them. The set is closed on purpose: adding a rule means adding it here (or
// in rules.DefaultRules), so exhaustive review of the merge tables happens in
// code review rather than at runtime.
type RuleSet struct {
	MessageRules []MessageRuleFunc
}

// Runs every message rule in order. Only dispatches execution; merging of
// candidate actions happens through the context as each rule fires.
func (r *RuleSet) CallMessageRules(c *MessageContext) error {
	for _, f := range r.MessageRules {
		if err := f(c); err != nil {
			return err
		}
	}
	return nil
}
