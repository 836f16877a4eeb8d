package reactive

import (
	"reflect"
	"sync"
)

// source is the subscriber list shared by signals and memos.
type source struct {
	id   uint64
	mu   sync.Mutex
	subs []Listener
}

func (s *source) subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

func (s *source) unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notify marks subscribers dirty, or queues them while a batch is open.
// Subscribers are copied first so no lock is held during notification.
func (s *source) notify() {
	s.mu.Lock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	c := current()
	if c.batchDepth > 0 {
		c.pending = append(c.pending, subs...)
		return
	}
	release(c)
	for _, l := range subs {
		l.MarkDirty()
	}
}

// track subscribes the current listener, if any, to s.
func (s *source) track() {
	l := currentListener()
	if l == nil {
		return
	}
	s.subscribe(l)
	if d, ok := l.(dependent); ok {
		d.addSource(s)
	}
}

// Signal is a reactive value cell.
type Signal[T any] struct {
	src   source
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool
}

// NewSignal creates a signal that compares values with == for basic types
// and reflect.DeepEqual otherwise.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		src:   source{id: nextID()},
		value: initial,
	}
}

// NewRefSignal creates a signal over a pointer that treats a write as a
// change only when the pointer differs. Writing back the same pointer is a
// no-op, even if the pointee was mutated.
func NewRefSignal[T any](initial *T) *Signal[*T] {
	s := NewSignal(initial)
	s.equal = func(a, b *T) bool { return a == b }
	return s
}

// ID returns the signal's unique id.
func (s *Signal[T]) ID() uint64 {
	return s.src.id
}

// Get returns the value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	v := s.value
	s.mu.RUnlock()
	s.src.track()
	return v
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update replaces the value with fn(old) and notifies subscribers if it
// changed. It reports whether a change happened.
func (s *Signal[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.src.notify()
	}
	return changed
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
