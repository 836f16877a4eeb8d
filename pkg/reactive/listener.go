package reactive

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it.
type Listener interface {
	// MarkDirty tells the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Cleanup is returned by effects and runs before the next run and on dispose.
type Cleanup func()

// dependent is a listener that remembers its sources so it can unsubscribe
// before it re-tracks.
type dependent interface {
	Listener
	addSource(src *source)
}
