package reactive

// Batch groups writes so each affected listener is notified once, when the
// outermost batch returns. Batches nest.
//
//	Batch(func() {
//	    first.Set("Ada")
//	    last.Set("Lovelace")
//	})
func Batch(fn func()) {
	c := current()
	c.batchDepth++
	defer func() {
		c.batchDepth--
		if c.batchDepth > 0 {
			return
		}
		pending := c.pending
		c.pending = nil
		release(c)
		notifyOnce(pending)
	}()
	fn()
}

// InBatch reports whether the calling goroutine is inside Batch.
func InBatch() bool {
	c := current()
	defer release(c)
	return c.batchDepth > 0
}

func notifyOnce(listeners []Listener) {
	if len(listeners) == 0 {
		return
	}
	seen := make(map[uint64]bool, len(listeners))
	for _, l := range listeners {
		id := l.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		l.MarkDirty()
	}
}

// Untracked runs fn without subscribing the current listener to anything fn
// reads.
func Untracked(fn func()) {
	old := setListener(nil)
	defer restoreListener(old)
	fn()
}
