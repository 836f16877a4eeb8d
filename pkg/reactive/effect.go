package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when a signal or memo it read
// changes.
//
// The first run happens inside CreateEffect. Re-runs are deferred: the effect
// is queued on its owner and runs on the owner's next RunPendingEffects, so
// it always observes committed state. An effect without an owner re-runs
// synchronously.
type Effect struct {
	id      uint64
	fn      func() Cleanup
	cleanup Cleanup
	owner   *Owner

	sourcesMu sync.Mutex
	sources   []*source

	pending  atomic.Bool
	disposed atomic.Bool
}

// CreateEffect creates an effect under the current owner and runs it once.
func CreateEffect(fn func() Cleanup) *Effect {
	owner := currentOwner()
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner != nil {
		owner.registerEffect(e)
	}
	e.run()
	return e
}

// OnUpdate tracks whatever deps reads and calls fn on every later change,
// skipping the initial run.
func OnUpdate(deps func(), fn func()) *Effect {
	first := true
	return CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		Untracked(fn)
		return nil
	})
}

// MarkDirty schedules the effect to run again.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.owner != nil {
		e.owner.scheduleEffect(e)
		return
	}
	e.run()
}

// ID returns the effect's unique id.
func (e *Effect) ID() uint64 {
	return e.id
}

// Dispose runs the last cleanup and unsubscribes from every source.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()
}

func (e *Effect) addSource(src *source) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == src {
			return
		}
	}
	e.sources = append(e.sources, src)
}

func (e *Effect) dropSources() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		s.unsubscribe(e)
	}
	e.sources = nil
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.dropSources()

	old := setListener(e)
	defer restoreListener(old)
	e.cleanup = e.fn()
}

var _ dependent = (*Effect)(nil)
