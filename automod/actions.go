package automod

import (
	"fmt"
	"time"
)

// What to do with the offending message itself.
type MessageActionKind string

const (
	MessageActionDelete MessageActionKind = "delete"
)

type MessageAction struct {
	Kind MessageActionKind
}

func DeleteMessage() *MessageAction {
	return &MessageAction{Kind: MessageActionDelete}
}

// Relative severity of message actions. Consulted by the merge when two rules
// request different message actions; must stay total over MessageActionKind,
// and needs review whenever a new kind is added.
var messageActionRank = map[MessageActionKind]int{
	MessageActionDelete: 0,
}

// What to do with the author of the offending message.
type UserActionKind string

const (
	UserActionMute UserActionKind = "mute"
	UserActionBan  UserActionKind = "ban"
)

type UserAction struct {
	Kind UserActionKind
	// only meaningful for mutes
	Duration time.Duration
}

func MuteUser(d time.Duration) *UserAction {
	return &UserAction{Kind: UserActionMute, Duration: d}
}

func BanUser() *UserAction {
	return &UserAction{Kind: UserActionBan}
}

// Human-readable line for the "Actions Taken" section of a report.
func (a *UserAction) String() string {
	switch a.Kind {
	case UserActionBan:
		return "User banned"
	case UserActionMute:
		return fmt.Sprintf("User timed out for %d seconds", int64(a.Duration.Seconds()))
	default:
		return string(a.Kind)
	}
}

func (a *MessageAction) String() string {
	switch a.Kind {
	case MessageActionDelete:
		return "Message deleted"
	default:
		return string(a.Kind)
	}
}

// The unmerged output of a single rule: an optional report fragment plus
// optional message and user actions. Nil pointers mean "no action of that
// kind requested".
type CandidateAction struct {
	Report  string
	Message *MessageAction
	User    *UserAction
}
