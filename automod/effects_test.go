package automod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeReportConcatenation(t *testing.T) {
	assert := assert.New(t)

	var eff Effects
	assert.Equal("", eff.ReportText())
	assert.False(eff.Triggered())

	eff.Merge(CandidateAction{Report: "first reason"}, true)
	assert.Equal("- first reason", eff.ReportText())
	assert.True(eff.Triggered())

	eff.Merge(CandidateAction{Report: "second reason"}, true)
	assert.Equal("- first reason\n- second reason", eff.ReportText())
}

func TestMergeMessageActionFirstWriterWins(t *testing.T) {
	assert := assert.New(t)

	var eff Effects
	eff.Merge(CandidateAction{Message: DeleteMessage()}, true)
	first := eff.Message
	eff.Merge(CandidateAction{Message: DeleteMessage()}, true)
	assert.Same(first, eff.Message)
}

func TestMergeBanDominance(t *testing.T) {
	assert := assert.New(t)

	// mute then ban escalates
	var eff Effects
	eff.Merge(CandidateAction{User: MuteUser(30 * time.Second)}, true)
	eff.Merge(CandidateAction{User: BanUser()}, true)
	assert.Equal(UserActionBan, eff.User.Kind)

	// ban then mute stays banned
	eff = Effects{}
	eff.Merge(CandidateAction{User: BanUser()}, true)
	eff.Merge(CandidateAction{User: MuteUser(30 * time.Second)}, true)
	assert.Equal(UserActionBan, eff.User.Kind)
}

func TestMergeMuteStackingToggle(t *testing.T) {
	assert := assert.New(t)

	var eff Effects
	eff.Merge(CandidateAction{User: MuteUser(30 * time.Second)}, true)
	eff.Merge(CandidateAction{User: MuteUser(45 * time.Second)}, true)
	assert.Equal(UserActionMute, eff.User.Kind)
	assert.Equal(75*time.Second, eff.User.Duration)

	eff = Effects{}
	eff.Merge(CandidateAction{User: MuteUser(30 * time.Second)}, false)
	eff.Merge(CandidateAction{User: MuteUser(45 * time.Second)}, false)
	assert.Equal(UserActionMute, eff.User.Kind)
	assert.Equal(30*time.Second, eff.User.Duration)
}

// Permuting fold order must not change the final dispositions, only the order
// of report fragments.
func TestMergeOrderIndependence(t *testing.T) {
	assert := assert.New(t)

	cands := []CandidateAction{
		{Report: "a", Message: DeleteMessage(), User: MuteUser(30 * time.Second)},
		{Report: "b", User: BanUser()},
		{Report: "c", User: MuteUser(45 * time.Second)},
	}
	perms := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range perms {
		var eff Effects
		for _, i := range perm {
			eff.Merge(cands[i], true)
		}
		assert.Equal(MessageActionDelete, eff.Message.Kind)
		assert.Equal(UserActionBan, eff.User.Kind)
		assert.Len(eff.ReportLines, 3)
	}

	// mute-only folds commute on duration when stacking
	muteOnly := []CandidateAction{
		{User: MuteUser(10 * time.Second)},
		{User: MuteUser(20 * time.Second)},
		{User: MuteUser(30 * time.Second)},
	}
	for _, perm := range perms {
		var eff Effects
		for _, i := range perm {
			eff.Merge(muteOnly[i], true)
		}
		assert.Equal(60*time.Second, eff.User.Duration)
	}
}

func TestMergeEmptyCandidate(t *testing.T) {
	assert := assert.New(t)

	var eff Effects
	eff.Merge(CandidateAction{}, true)
	assert.False(eff.Triggered())
	assert.Nil(eff.Message)
	assert.Nil(eff.User)
}
