// Auto-moderation rules engine for Discord guilds.
//
// This package (`github.com/warden-bot/warden/automod`) evaluates incoming chat
// messages against a configured set of detection rules, folds the actions of
// every triggered rule into a single consolidated enforcement action, and
// applies that action against the platform: deleting the message, muting or
// banning the author, and posting a report to a moderation channel. Counters
// and named sets can drive rule decisions across messages. See `cmd/warden`
// for a daemon built on this package.
package automod
