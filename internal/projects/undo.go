package projects

import (
	"sync"
	"time"
)

// UndoTracker retains at most one "undo candidate": a copy of the most
// recently deleted project, stripped of its id. Restoring it inserts a
// brand-new record — the original id is gone the moment the delete
// succeeds, undo does not resurrect it.
//
// Arming a new candidate silently discards the previous one
// (last-delete-wins). Expiry runs through a cancellable time.AfterFunc
// handle; the generation counter keeps a late timer from clearing a
// candidate armed after it was scheduled.
type UndoTracker struct {
	mu         sync.Mutex
	candidate  *Project
	generation uint64
	timer      *time.Timer
	ttl        time.Duration
}

func NewUndoTracker(ttl time.Duration) *UndoTracker {
	return &UndoTracker{ttl: ttl}
}

// Arm stores the pre-delete copy of a project as the undo candidate,
// superseding any existing candidate and restarting the expiry clock.
func (t *UndoTracker) Arm(item Project) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item.ID = ""
	snapshot := item
	snapshot.Images = append([]string(nil), item.Images...)

	t.stopTimerLocked()
	t.candidate = &snapshot
	t.generation++

	if t.ttl > 0 {
		gen := t.generation
		t.timer = time.AfterFunc(t.ttl, func() {
			t.expire(gen)
		})
	}
}

// Peek reports the current candidate without consuming it.
func (t *UndoTracker) Peek() (Project, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.candidate == nil {
		return Project{}, false
	}
	return *t.candidate, true
}

// Take removes and returns the candidate. The caller owns the restore
// attempt; on failure it may hand the candidate back via Restock.
func (t *UndoTracker) Take() (Project, uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.candidate == nil {
		return Project{}, 0, false
	}
	item := *t.candidate
	gen := t.generation
	t.stopTimerLocked()
	t.candidate = nil
	return item, gen, true
}

// Restock puts a taken candidate back after a failed restore, unless a
// newer delete armed the tracker in the meantime.
func (t *UndoTracker) Restock(item Project, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generation != gen {
		return
	}
	t.candidate = &item
	if t.ttl > 0 {
		t.timer = time.AfterFunc(t.ttl, func() {
			t.expire(gen)
		})
	}
}

// Clear dismisses the candidate, making the deletion final from the
// user's point of view.
func (t *UndoTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimerLocked()
	t.candidate = nil
	t.generation++
}

func (t *UndoTracker) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generation != gen {
		return
	}
	t.candidate = nil
	t.timer = nil
}

func (t *UndoTracker) stopTimerLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
