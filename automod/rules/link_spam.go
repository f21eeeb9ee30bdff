package rules

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/warden-bot/warden/automod"
)

var _ automod.MessageRuleFunc = LinkSpamRule

// LinkSpamRule triggers when message content links to a host present in the
// configured banned-hosts set.
func LinkSpamRule(c *automod.MessageContext) error {
	cfg := c.Settings().Rules.LinkSpam
	if cfg == nil {
		return nil
	}
	for _, host := range extractLinkHosts(c.Message.Content) {
		if c.InSet(cfg.SetName, host) {
			c.TakeAction(cfg.Actions.Candidate(fmt.Sprintf("Banned link (%s)", host)))
			c.Increment("rule-trigger", "link-spam")
			return nil
		}
	}
	return nil
}

func extractLinkHosts(content string) []string {
	var hosts []string
	for _, word := range strings.Fields(content) {
		if !strings.Contains(word, "://") {
			continue
		}
		u, err := url.Parse(word)
		if err != nil || u.Hostname() == "" {
			continue
		}
		hosts = append(hosts, strings.ToLower(u.Hostname()))
	}
	return hosts
}
