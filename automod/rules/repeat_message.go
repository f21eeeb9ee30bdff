package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/warden-bot/warden/automod"
	"github.com/warden-bot/warden/automod/countstore"
)

var _ automod.MessageRuleFunc = RepeatMessageRule

// RepeatMessageRule triggers when an author posts the same text content at
// least the configured number of times within an hour.
func RepeatMessageRule(c *automod.MessageContext) error {
	cfg := c.Settings().Rules.RepeatMessage
	if cfg == nil {
		return nil
	}
	if c.Message.Content == "" {
		return nil
	}

	sum := sha256.Sum256([]byte(c.Message.Content))
	val := c.Message.Author.ID + "/" + hex.EncodeToString(sum[:16])

	// prior identical posts this hour, plus this one
	seen := c.GetCount("repeat-message", val, countstore.PeriodHour) + 1
	c.IncrementPeriod("repeat-message", val, countstore.PeriodHour)

	if seen < cfg.Count {
		return nil
	}
	c.TakeAction(cfg.Actions.Candidate(fmt.Sprintf("Repeated message (%d identical messages in the last hour)", seen)))
	c.Increment("rule-trigger", "repeat-message")
	return nil
}
