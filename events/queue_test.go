package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundai-club/sundai-backend/models"
)

func entry(pos int, status models.QueueStatus) models.EventProject {
	return models.EventProject{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Position:  pos,
		Status:    status,
	}
}

func findByID(t *testing.T, entries []models.EventProject, id uuid.UUID) models.EventProject {
	t.Helper()
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("entry %s not in queue", id)
	return models.EventProject{}
}

func TestReorderSwapsOnlyTheTwoPositions(t *testing.T) {
	q1 := entry(1, models.QueueQueued)
	done := entry(2, models.QueueDone)
	q2 := entry(3, models.QueueQueued)
	skipped := entry(4, models.QueueSkipped)

	queue := []models.EventProject{q1, done, q2, skipped}

	swap, err := PlanReorder(queue, q1.ID, MoveDown)
	require.NoError(t, err)

	// q1 and q2 exchange positions; the fixed entries between and after
	// them are untouched.
	assert.Equal(t, q1.ID, swap.EntryA)
	assert.Equal(t, q2.ID, swap.EntryB)
	assert.Equal(t, 3, swap.PositionA)
	assert.Equal(t, 1, swap.PositionB)
}

func TestReorderScansPastFixedEntriesUpward(t *testing.T) {
	a := entry(1, models.QueueApproved)
	cur := entry(2, models.QueueCurrent)
	b := entry(3, models.QueueQueued)

	swap, err := PlanReorder([]models.EventProject{a, cur, b}, b.ID, MoveUp)
	require.NoError(t, err)

	assert.Equal(t, b.ID, swap.EntryA)
	assert.Equal(t, a.ID, swap.EntryB)
}

func TestReorderErrors(t *testing.T) {
	cur := entry(1, models.QueueCurrent)
	q := entry(2, models.QueueQueued)
	queue := []models.EventProject{cur, q}

	_, err := PlanReorder(queue, cur.ID, MoveDown)
	assert.ErrorIs(t, err, ErrEntryNotMovable)

	_, err = PlanReorder(queue, q.ID, MoveDown)
	assert.ErrorIs(t, err, ErrNoSwapTarget, "nothing movable below the last movable entry")

	_, err = PlanReorder(queue, uuid.New(), MoveUp)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestAdvancePromotesApprovedBeforeQueued(t *testing.T) {
	cur := entry(1, models.QueueCurrent)
	queued := entry(2, models.QueueQueued)
	approved := entry(3, models.QueueApproved)

	transitions, err := PlanAdvance([]models.EventProject{cur, queued, approved})
	require.NoError(t, err)
	require.Len(t, transitions, 2)

	assert.Equal(t, Transition{EntryID: cur.ID, To: models.QueueDone}, transitions[0])
	assert.Equal(t, Transition{EntryID: approved.ID, To: models.QueueCurrent}, transitions[1])
}

func TestAdvanceKeepsSingleCurrent(t *testing.T) {
	cur := entry(1, models.QueueCurrent)
	next := entry(2, models.QueueApproved)
	queue := []models.EventProject{cur, next}

	transitions, err := PlanAdvance(queue)
	require.NoError(t, err)

	// Apply the plan and verify exactly one CURRENT remains.
	for _, tr := range transitions {
		for i := range queue {
			if queue[i].ID == tr.EntryID {
				queue[i].Status = tr.To
			}
		}
	}
	currents := 0
	for _, e := range queue {
		if e.Status == models.QueueCurrent {
			currents++
		}
	}
	assert.Equal(t, 1, currents)
	assert.Equal(t, models.QueueDone, findByID(t, queue, cur.ID).Status)
}

func TestAdvanceOnLastEntryJustFinishesIt(t *testing.T) {
	cur := entry(1, models.QueueCurrent)
	done := entry(2, models.QueueDone)

	transitions, err := PlanAdvance([]models.EventProject{done, cur})
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, models.QueueDone, transitions[0].To)
}

func TestAdvanceOnEmptyQueueFails(t *testing.T) {
	_, err := PlanAdvance(nil)
	assert.ErrorIs(t, err, ErrQueueExhausted)
}

func TestPreviousRestoresLatestDoneEntry(t *testing.T) {
	first := entry(1, models.QueueDone)
	second := entry(2, models.QueueDone)
	cur := entry(3, models.QueueCurrent)

	transitions, err := PlanPrevious([]models.EventProject{first, second, cur})
	require.NoError(t, err)
	require.Len(t, transitions, 2)

	assert.Equal(t, Transition{EntryID: cur.ID, To: models.QueueApproved}, transitions[0])
	assert.Equal(t, Transition{EntryID: second.ID, To: models.QueueCurrent}, transitions[1])
}

func TestPreviousWithoutHistoryFails(t *testing.T) {
	cur := entry(1, models.QueueCurrent)

	_, err := PlanPrevious([]models.EventProject{cur})
	assert.ErrorIs(t, err, ErrNoCurrentEntry)
}

func TestNextPosition(t *testing.T) {
	assert.Equal(t, 1, NextPosition(nil))
	assert.Equal(t, 4, NextPosition([]models.EventProject{entry(3, models.QueueQueued), entry(1, models.QueueDone)}))
}
