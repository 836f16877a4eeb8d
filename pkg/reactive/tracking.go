package reactive

import (
	"runtime"
	"sync"
)

// trackingContext is the reactive state of one goroutine.
type trackingContext struct {
	// owner receives effects and cleanups created while it is current.
	owner *Owner

	// listener subscribes to every signal read while it is current.
	listener Listener

	// batchDepth > 0 means notifications are queued in pending.
	batchDepth int
	pending    []Listener
}

func (c *trackingContext) idle() bool {
	return c.owner == nil && c.listener == nil && c.batchDepth == 0 && len(c.pending) == 0
}

var contexts sync.Map // map[uint64]*trackingContext

// goroutineID parses the id out of the "goroutine N [" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func current() *trackingContext {
	gid := goroutineID()
	if c, ok := contexts.Load(gid); ok {
		return c.(*trackingContext)
	}
	c := &trackingContext{}
	contexts.Store(gid, c)
	return c
}

// release drops the goroutine's context once nothing is in flight, so
// short-lived goroutines do not leave entries behind.
func release(c *trackingContext) {
	if c.idle() {
		contexts.Delete(goroutineID())
	}
}

func currentListener() Listener {
	return current().listener
}

func setListener(l Listener) Listener {
	c := current()
	old := c.listener
	c.listener = l
	return old
}

func restoreListener(l Listener) {
	c := current()
	c.listener = l
	release(c)
}

func currentOwner() *Owner {
	return current().owner
}

// WithOwner runs fn with owner as the current owner. Effects and context
// values created inside fn belong to it.
func WithOwner(owner *Owner, fn func()) {
	c := current()
	old := c.owner
	c.owner = owner
	defer func() {
		c.owner = old
		release(c)
	}()
	fn()
}

// CurrentOwner returns the owner installed by WithOwner, or nil.
func CurrentOwner() *Owner {
	return currentOwner()
}
