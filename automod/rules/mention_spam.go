package rules

import (
	"fmt"

	"github.com/warden-bot/warden/automod"
	"github.com/warden-bot/warden/automod/countstore"
)

var _ automod.MessageRuleFunc = MentionSpamRule

// MentionSpamRule looks for authors mentioning an unusually large number of
// distinct accounts per hour.
func MentionSpamRule(c *automod.MessageContext) error {
	cfg := c.Settings().Rules.MentionSpam
	if cfg == nil {
		return nil
	}
	if len(c.Message.Mentions) == 0 {
		return nil
	}

	author := c.Message.Author.ID
	for _, mention := range c.Message.Mentions {
		c.IncrementDistinct("mentions", author, mention)
	}

	// counter increments persist after evaluation, so the read covers prior
	// messages only; add this message's own mentions on top
	seen := c.GetCountDistinct("mentions", author, countstore.PeriodHour) + len(c.Message.Mentions)
	if seen < cfg.Count {
		return nil
	}
	c.TakeAction(cfg.Actions.Candidate(fmt.Sprintf("Mention flood (%d distinct accounts mentioned in the last hour)", seen)))
	c.Increment("rule-trigger", "mention-spam")
	return nil
}
