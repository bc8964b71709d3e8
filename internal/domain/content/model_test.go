package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusDraft, StatusWaitingApproval},
		{StatusWaitingApproval, StatusApproved},
		{StatusWaitingApproval, StatusRejected},
		{StatusApproved, StatusPublished},
		{StatusApproved, StatusRejected},
	}
	for _, tt := range allowed {
		require.True(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to Status }{
		{StatusDraft, StatusApproved},
		{StatusDraft, StatusPublished},
		{StatusDraft, StatusRejected},
		{StatusWaitingApproval, StatusDraft},
		{StatusWaitingApproval, StatusPublished},
		{StatusApproved, StatusDraft},
		{StatusPublished, StatusDraft},
		{StatusPublished, StatusRejected},
		{StatusRejected, StatusDraft},
		{StatusRejected, StatusWaitingApproval},
		{StatusDraft, StatusDraft},
	}
	for _, tt := range denied {
		require.False(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	require.True(t, StatusPublished.Terminal())
	require.True(t, StatusRejected.Terminal())
	require.False(t, StatusDraft.Terminal())
	require.False(t, StatusWaitingApproval.Terminal())
	require.False(t, StatusApproved.Terminal())
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusDraft.Valid())
	require.False(t, Status("archived").Valid())
	require.False(t, Status("").Valid())
}

func TestWeekOf(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	require.Equal(t, "2026-01", WeekOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Week numbers below ten are zero padded.
	require.Equal(t, "2026-09", WeekOf(time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)))

	// Early January can belong to the previous ISO year.
	require.Equal(t, "2020-53", WeekOf(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}
