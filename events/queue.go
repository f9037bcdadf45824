// Package events holds the pure queue logic for pitch events: which
// entries can move, how a reorder picks its swap partner, and how
// advance/previous walk the presentation order. The database layer
// applies the returned plans transactionally.
package events

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/sundai-club/sundai-backend/models"
)

var (
	ErrEntryNotFound   = errors.New("queue entry not found")
	ErrEntryNotMovable = errors.New("queue entry is not movable")
	ErrNoSwapTarget    = errors.New("no movable neighbor in that direction")
	ErrNoCurrentEntry  = errors.New("no entry is currently presenting")
	ErrQueueExhausted  = errors.New("no entry left to present")
)

// Direction of a reorder relative to presentation order.
type Direction int

const (
	MoveUp   Direction = -1
	MoveDown Direction = 1
)

// IsMovable reports whether an entry may be reordered. CURRENT, DONE
// and SKIPPED entries are fixed; the movable entries form a
// sub-sequence that reorders independently around them.
func IsMovable(s models.QueueStatus) bool {
	return s == models.QueueQueued || s == models.QueueApproved
}

// ByPosition returns the entries as a new slice sorted by position.
func ByPosition(entries []models.EventProject) []models.EventProject {
	sorted := make([]models.EventProject, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// CurrentEntry returns the entry presenting now, or nil.
func CurrentEntry(entries []models.EventProject) *models.EventProject {
	for i := range entries {
		if entries[i].Status == models.QueueCurrent {
			return &entries[i]
		}
	}
	return nil
}

// Swap names the two entries whose positions are exchanged by a
// reorder. Every other entry keeps its position.
type Swap struct {
	EntryA    uuid.UUID
	EntryB    uuid.UUID
	PositionA int // new position of EntryA
	PositionB int // new position of EntryB
}

// PlanReorder finds the swap partner for moving an entry one movable
// step in the given direction. The scan walks outward from the entry,
// skipping fixed entries, so history and the live presenter never
// shift.
func PlanReorder(entries []models.EventProject, entryID uuid.UUID, dir Direction) (Swap, error) {
	sorted := ByPosition(entries)

	idx := -1
	for i := range sorted {
		if sorted[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Swap{}, ErrEntryNotFound
	}
	if !IsMovable(sorted[idx].Status) {
		return Swap{}, ErrEntryNotMovable
	}

	for j := idx + int(dir); j >= 0 && j < len(sorted); j += int(dir) {
		if !IsMovable(sorted[j].Status) {
			continue
		}
		return Swap{
			EntryA:    sorted[idx].ID,
			EntryB:    sorted[j].ID,
			PositionA: sorted[j].Position,
			PositionB: sorted[idx].Position,
		}, nil
	}
	return Swap{}, ErrNoSwapTarget
}

// Transition moves one entry to a new status.
type Transition struct {
	EntryID uuid.UUID
	To      models.QueueStatus
}

// PlanAdvance finishes the current presenter (if any) and promotes the
// next entry: the lowest-positioned APPROVED entry, falling back to
// the lowest-positioned QUEUED one. Applying all transitions in one
// transaction preserves the single-CURRENT invariant.
func PlanAdvance(entries []models.EventProject) ([]Transition, error) {
	var transitions []Transition
	if cur := CurrentEntry(entries); cur != nil {
		transitions = append(transitions, Transition{EntryID: cur.ID, To: models.QueueDone})
	}

	next := firstWithStatus(entries, models.QueueApproved)
	if next == nil {
		next = firstWithStatus(entries, models.QueueQueued)
	}
	if next == nil {
		if len(transitions) == 0 {
			return nil, ErrQueueExhausted
		}
		return transitions, nil
	}

	return append(transitions, Transition{EntryID: next.ID, To: models.QueueCurrent}), nil
}

// PlanPrevious demotes the current presenter back to APPROVED and
// restores the most recently presented entry (the DONE entry with the
// highest position).
func PlanPrevious(entries []models.EventProject) ([]Transition, error) {
	var last *models.EventProject
	for i := range entries {
		e := &entries[i]
		if e.Status != models.QueueDone {
			continue
		}
		if last == nil || e.Position > last.Position {
			last = e
		}
	}
	if last == nil {
		return nil, ErrNoCurrentEntry
	}

	var transitions []Transition
	if cur := CurrentEntry(entries); cur != nil {
		transitions = append(transitions, Transition{EntryID: cur.ID, To: models.QueueApproved})
	}
	return append(transitions, Transition{EntryID: last.ID, To: models.QueueCurrent}), nil
}

// NextPosition returns the position for a newly submitted entry: one
// past the current maximum.
func NextPosition(entries []models.EventProject) int {
	max := 0
	for _, e := range entries {
		if e.Position > max {
			max = e.Position
		}
	}
	return max + 1
}

func firstWithStatus(entries []models.EventProject, status models.QueueStatus) *models.EventProject {
	var first *models.EventProject
	for i := range entries {
		e := &entries[i]
		if e.Status != status {
			continue
		}
		if first == nil || e.Position < first.Position {
			first = e
		}
	}
	return first
}
