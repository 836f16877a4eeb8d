package urlparam

import "sync"

// Navigator turns query values into URL patches.
type Navigator struct {
	queuePatch func(Patch)
}

// NewNavigator creates a navigator that hands patches to queuePatch. The
// session passes a closure that appends to its outgoing buffer so the patch
// is sent with the rest of the tick's output.
func NewNavigator(queuePatch func(Patch)) *Navigator {
	return &Navigator{queuePatch: queuePatch}
}

// Navigate queues a patch that replaces the whole query string with values.
func (n *Navigator) Navigate(values map[string][]string, mode URLMode) {
	if n == nil || n.queuePatch == nil {
		return
	}
	n.queuePatch(Patch{Mode: mode, Query: Encode(values)})
}

// Recorder is an in-memory address bar. It keeps every patch it receives.
type Recorder struct {
	mu      sync.Mutex
	patches []Patch
}

// Navigate records the patch Navigator would have queued.
func (r *Recorder) Navigate(values map[string][]string, mode URLMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, Patch{Mode: mode, Query: Encode(values)})
}

// History returns every recorded patch, oldest first.
func (r *Recorder) History() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Patch(nil), r.patches...)
}

// Last returns the latest patch, and false when none was recorded.
func (r *Recorder) Last() (Patch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.patches) == 0 {
		return Patch{}, false
	}
	return r.patches[len(r.patches)-1], true
}

// Query returns the current query string of the recorded address.
func (r *Recorder) Query() string {
	p, _ := r.Last()
	return p.Query
}
