package rules

import (
	"fmt"

	"github.com/warden-bot/warden/automod"
)

var _ automod.MessageRuleFunc = AttachmentSpamRule

// AttachmentSpamRule triggers on messages with no text content carrying at
// least the configured number of attachments.
func AttachmentSpamRule(c *automod.MessageContext) error {
	cfg := c.Settings().Rules.AttachmentSpam
	if cfg == nil {
		return nil
	}
	if c.Message.Content != "" {
		return nil
	}
	count := len(c.Message.Attachments)
	if count < cfg.Count {
		return nil
	}
	c.TakeAction(cfg.Actions.Candidate(fmt.Sprintf("Attachment spam (%d), without message content", count)))
	c.Increment("rule-trigger", "attachment-spam")
	return nil
}
