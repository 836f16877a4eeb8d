// Package reactive provides the single-threaded update loop that hosts the
// recipe state container.
//
// It is a small fine-grained reactive system: reading a Signal inside a Memo
// or Effect subscribes that listener to the signal, and writing the signal
// notifies it.
//
// # Core Types
//
// Signal[T] holds a value:
//
//	count := NewSignal(0)
//	count.Get()   // tracked read
//	count.Set(5)  // notifies subscribers if the value changed
//
// NewRefSignal compares by pointer identity instead of value, which is what
// reducer-backed state wants: a reducer that returns the same pointer has not
// changed anything.
//
// Memo[T] caches a derived value and recomputes only after a dependency
// changed:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//
// Effect runs side effects. The first run is immediate; later runs are queued
// on the effect's Owner and happen when the owner is flushed with
// RunPendingEffects, after the write that triggered them has committed.
//
// # Batching
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // listeners notified once
//
// # Thread Safety
//
// Primitives may be touched from several goroutines, but the tracking context
// (current owner, current listener, batch depth) is per goroutine. Owners are
// meant to be driven by exactly one goroutine at a time.
package reactive
