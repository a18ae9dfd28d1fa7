package projection

import (
	"sync"
	"time"
)

// DefaultAdvanceDelay is how long a freshly completed phase stays on screen
// before the view moves on.
const DefaultAdvanceDelay = time.Second

// Tracker detects active→completed phase transitions between consecutive
// projector evaluations and schedules an advance to the next phase in
// PhaseOrder after a short display delay. A pending advance is cancelled when
// the phase list changes again before it fires, or on Stop.
//
// This is the only stateful part of the projection: it needs the previous
// phase list to diff against the current one.
type Tracker struct {
	mu      sync.Mutex
	delay   time.Duration
	advance func(PhaseID)
	prev    []Phase
	timer   *time.Timer
}

func NewTracker(delay time.Duration, advance func(PhaseID)) *Tracker {
	if delay <= 0 {
		delay = DefaultAdvanceDelay
	}
	return &Tracker{delay: delay, advance: advance}
}

// Observe feeds the tracker the latest phase projection.
func (t *Tracker) Observe(phases []Phase) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.prev
	t.prev = append([]Phase(nil), phases...)

	if prev == nil {
		return
	}
	if phasesEqual(prev, phases) {
		return
	}

	t.cancelLocked()
	for _, phase := range phases {
		if previousStatus(prev, phase.ID) == PhaseActive && phase.Status == PhaseCompleted {
			if next, ok := NextPhase(phase.ID); ok {
				t.scheduleLocked(next)
			}
		}
	}
}

// Stop cancels any pending advance.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *Tracker) scheduleLocked(next PhaseID) {
	t.cancelLocked()
	t.timer = time.AfterFunc(t.delay, func() {
		if t.advance != nil {
			t.advance(next)
		}
	})
}

func (t *Tracker) cancelLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// NextPhase returns the phase after the given one in PhaseOrder.
func NextPhase(id PhaseID) (PhaseID, bool) {
	for i, phase := range PhaseOrder {
		if phase == id && i+1 < len(PhaseOrder) {
			return PhaseOrder[i+1], true
		}
	}
	return "", false
}

func previousStatus(phases []Phase, id PhaseID) PhaseStatus {
	for _, phase := range phases {
		if phase.ID == id {
			return phase.Status
		}
	}
	return ""
}

func phasesEqual(a, b []Phase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Status != b[i].Status {
			return false
		}
	}
	return true
}
