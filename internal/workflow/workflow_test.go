package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	want := map[Status][]Status{
		NotStarted:      {InfoRequired, InProgress},
		InfoRequired:    {InProgress, NotStarted},
		InProgress:      {Stopped, ReadyForTesting, Returned},
		Stopped:         {InProgress, NotStarted},
		Returned:        {InProgress, InfoRequired},
		ReadyForTesting: {Tested, Returned},
		Tested:          {Deployed, Returned},
		Deployed:        nil,
	}

	require.Len(t, All(), len(want))
	for status, next := range want {
		assert.ElementsMatch(t, next, AllowedNext(status), "статус %s", status)
	}
}

// CanTransition истинен тогда и только тогда, когда целевой статус
// входит в AllowedNext исходного.
func TestCanTransitionMatchesAllowedNext(t *testing.T) {
	for _, from := range All() {
		allowed := map[Status]bool{}
		for _, n := range AllowedNext(from) {
			allowed[n] = true
		}
		for _, to := range All() {
			assert.Equal(t, allowed[to], CanTransition(from, to),
				"%s → %s", from, to)
		}
	}
}

func TestDeployedIsTerminal(t *testing.T) {
	assert.Empty(t, AllowedNext(Deployed))
	for _, to := range All() {
		assert.False(t, CanTransition(Deployed, to))
	}
}

func TestUnknownStatus(t *testing.T) {
	_, ok := Info("bogus")
	assert.False(t, ok)
	assert.Nil(t, AllowedNext("bogus"))
	assert.False(t, CanTransition("bogus", InProgress))
}

func TestRequirementFlags(t *testing.T) {
	requiresComment := map[Status]bool{
		InfoRequired: true, Stopped: true, Returned: true, Deployed: true,
	}
	requiresAssignee := map[Status]bool{InProgress: true}

	for _, s := range All() {
		spec, ok := Info(s)
		require.True(t, ok)
		assert.Equal(t, requiresComment[s], spec.RequiresComment, "requires_comment %s", s)
		assert.Equal(t, requiresAssignee[s], spec.RequiresAssignee, "requires_assignee %s", s)
	}
}
