package rules

import (
	"github.com/warden-bot/warden/automod"
)

func DefaultRules() automod.RuleSet {
	rules := automod.RuleSet{
		MessageRules: []automod.MessageRuleFunc{
			AttachmentSpamRule,
			MentionSpamRule,
			RepeatMessageRule,
			LinkSpamRule,
		},
	}
	return rules
}
