package reactive

import (
	"sync"
	"sync/atomic"
)

// maxFlushRounds bounds RunPendingEffects when effects keep scheduling each
// other.
const maxFlushRounds = 64

// Owner is a scope that owns effects, cleanups, child owners and context
// values. Disposing an owner disposes everything it owns.
type Owner struct {
	id     uint64
	parent *Owner

	mu       sync.Mutex
	children []*Owner
	effects  []*Effect
	cleanups []func()
	pending  []*Effect

	valuesMu sync.RWMutex
	values   map[any]any

	disposed atomic.Bool
}

// NewOwner creates an owner. A nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{id: nextID(), parent: parent}
	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, o)
		parent.mu.Unlock()
	}
	return o
}

// ID returns the owner's unique id.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// OnCleanup registers fn to run on Dispose. On a disposed owner fn runs
// immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.effects = append(o.effects, e)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, e)
}

// HasPendingEffects reports whether this owner or a descendant has queued
// effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}
	o.mu.Lock()
	n := len(o.pending)
	children := append([]*Owner(nil), o.children...)
	o.mu.Unlock()
	if n > 0 {
		return true
	}
	for _, c := range children {
		if c.HasPendingEffects() {
			return true
		}
	}
	return false
}

// RunPendingEffects runs queued effects of this owner and its descendants
// until none are left, in scheduling order. It returns the number of effect
// runs.
func (o *Owner) RunPendingEffects() int {
	runs := 0
	for round := 0; round < maxFlushRounds && o.HasPendingEffects(); round++ {
		runs += o.runPendingOnce()
	}
	return runs
}

func (o *Owner) runPendingOnce() int {
	if o.disposed.Load() {
		return 0
	}
	o.mu.Lock()
	effects := o.pending
	o.pending = nil
	children := append([]*Owner(nil), o.children...)
	o.mu.Unlock()

	runs := 0
	for _, e := range effects {
		if e.pending.Load() {
			e.run()
			runs++
		}
	}
	for _, c := range children {
		runs += c.runPendingOnce()
	}
	return runs
}

// Dispose disposes children (last first), effects and cleanups (last
// first), then detaches from the parent. It is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	o.mu.Lock()
	children := o.children
	effects := o.effects
	cleanups := o.cleanups
	o.children, o.effects, o.cleanups, o.pending = nil, nil, nil, nil
	o.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}
	for _, e := range effects {
		e.Dispose()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	if p := o.parent; p != nil {
		p.mu.Lock()
		for i, c := range p.children {
			if c == o {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		p.mu.Unlock()
	}
}
