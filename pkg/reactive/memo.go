package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a lazily computed value that tracks the signals its compute
// function reads. After any of them changes, the next Get recomputes; until
// then Get returns the cached value unchanged.
//
// A Memo can itself be read by other memos and effects.
type Memo[T any] struct {
	src     source
	compute func() T

	mu    sync.RWMutex
	value T
	valid atomic.Bool

	sourcesMu sync.Mutex
	sources   []*source

	// computing guards against a memo that reads itself.
	computing atomic.Bool
}

// NewMemo creates a memo. compute runs on the first Get, not here.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		src:     source{id: nextID()},
		compute: compute,
	}
}

// Get returns the value, recomputing it if a dependency changed, and
// subscribes the current listener.
func (m *Memo[T]) Get() T {
	m.src.track()
	return m.Peek()
}

// Peek returns the value without subscribing. It still recomputes when stale.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cache and forwards the change downstream.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.src.notify()
	}
}

// ID returns the memo's unique id.
func (m *Memo[T]) ID() uint64 {
	return m.src.id
}

func (m *Memo[T]) addSource(src *source) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		if s == src {
			return
		}
	}
	m.sources = append(m.sources, src)
}

func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, s := range m.sources {
		s.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	old := setListener(m)
	next := m.compute()
	restoreListener(old)

	m.mu.Lock()
	m.value = next
	m.mu.Unlock()
	m.valid.Store(true)
}

var _ dependent = (*Memo[int])(nil)
