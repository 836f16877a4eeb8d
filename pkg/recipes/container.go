package recipes

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/recipes/pkg/reactive"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// Snapshot is the externally visible state at one point in time. Treat it
// and everything it points to as read-only.
type Snapshot struct {
	Loading  bool             `json:"loading"`
	Error    Optional[string] `json:"error"`
	ActiveID Optional[string] `json:"id"`
	Params   *Params          `json:"-"`
	List     *List            `json:"list"`

	status *Status
}

func newSnapshot(s *Status, p *Params, l *List) *Snapshot {
	return &Snapshot{
		Loading:  s.Loading,
		Error:    s.Error,
		ActiveID: s.ActiveID,
		Params:   p,
		List:     l,
		status:   s,
	}
}

func (s *Snapshot) of(st *Status, p *Params, l *List) bool {
	return s != nil && s.status == st && s.Params == p && s.List == l
}

// Handle is what the accessor returns: the latest snapshot and the dispatch
// facade.
type Handle struct {
	State    *Snapshot
	Dispatch *Dispatch
}

// Hook observes every dispatched action after its reducer ran. changed
// reports whether the slice pointer moved.
type Hook func(a Action, changed bool)

// Option configures a Container.
type Option func(*config)

type config struct {
	parent *reactive.Owner
	nav    Navigator
	mode   urlparam.URLMode
	logger *slog.Logger
	hooks  []Hook
}

// WithParent makes the container's owner a child of parent, so disposing
// parent disposes the container.
func WithParent(parent *reactive.Owner) Option {
	return func(c *config) { c.parent = parent }
}

// WithNavigator enables URL synchronization of the params slice.
func WithNavigator(nav Navigator, mode urlparam.URLMode) Option {
	return func(c *config) {
		c.nav = nav
		c.mode = mode
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithHook adds a dispatch observer.
func WithHook(h Hook) Option {
	return func(c *config) { c.hooks = append(c.hooks, h) }
}

// Container owns the status, params and list slices of one UI subtree.
//
// A container has a single writer. Every dispatch runs its reducer to
// completion, then flushes deferred effects (URL synchronization,
// subscribers) unless it happens inside Batch.
type Container struct {
	owner  *reactive.Owner
	logger *slog.Logger
	hooks  []Hook

	status *reactive.Signal[*Status]
	params *reactive.Signal[*Params]
	list   *reactive.Signal[*List]

	snapshot *reactive.Memo[*Snapshot]
	// built by State inside a batch, adopted by the memo afterwards
	pending  atomic.Pointer[Snapshot]
	dispatch *Dispatch
}

// New creates a container with the initial state: not loading, no error,
// no active id, empty params and the empty list.
func New(opts ...Option) *Container {
	cfg := config{mode: urlparam.ModeReplace}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Container{
		owner:  reactive.NewOwner(cfg.parent),
		logger: cfg.logger,
		hooks:  cfg.hooks,
		status: reactive.NewRefSignal(noStatus),
		params: reactive.NewRefSignal(noParams),
		list:   reactive.NewRefSignal(noList),
	}
	c.snapshot = reactive.NewMemo(func() *Snapshot {
		st, p, l := c.status.Get(), c.params.Get(), c.list.Get()
		if b := c.pending.Swap(nil); b.of(st, p, l) {
			return b
		}
		return newSnapshot(st, p, l)
	})
	c.dispatch = newDispatch(c.applyStatus, c.applyParams, c.applyList)

	if cfg.nav != nil {
		reactive.WithOwner(c.owner, func() {
			syncURL(c.params, cfg.nav, cfg.mode)
		})
	}
	return c
}

// State returns the latest snapshot. Without an intervening dispatch the
// same pointer is returned every time.
//
// Inside Batch it still reflects the actions dispatched so far, although
// subscribers have not seen them yet. That snapshot is kept and becomes
// the one published when the batch ends.
func (c *Container) State() *Snapshot {
	if reactive.InBatch() {
		return c.current()
	}
	return c.snapshot.Get()
}

// current compares the cached snapshot with the slices directly, since
// notifications are held while a batch is open.
func (c *Container) current() *Snapshot {
	st, p, l := c.status.Peek(), c.params.Peek(), c.list.Peek()
	if cached := c.snapshot.Peek(); cached.of(st, p, l) {
		return cached
	}
	if b := c.pending.Load(); b.of(st, p, l) {
		return b
	}
	s := newSnapshot(st, p, l)
	c.pending.Store(s)
	return s
}

// Dispatch returns the facade. Its pointer never changes.
func (c *Container) Dispatch() *Dispatch {
	return c.dispatch
}

// Use is the accessor: the latest snapshot plus the dispatch facade.
func (c *Container) Use() Handle {
	return Handle{State: c.State(), Dispatch: c.dispatch}
}

// Owner returns the reactive owner of the container.
func (c *Container) Owner() *reactive.Owner {
	return c.owner
}

// Batch runs fn, which may dispatch several actions, and flushes effects
// once afterwards. Actions still each target one slice; Batch only delays
// observers.
func (c *Container) Batch(fn func()) {
	reactive.Batch(fn)
	if !reactive.InBatch() {
		c.flush()
	}
}

// Subscribe calls fn with the new snapshot after every committed change. It
// returns a function that cancels the subscription.
func (c *Container) Subscribe(fn func(*Snapshot)) (cancel func()) {
	var e *reactive.Effect
	reactive.WithOwner(c.owner, func() {
		e = reactive.OnUpdate(
			func() { c.snapshot.Get() },
			func() { fn(c.snapshot.Peek()) },
		)
	})
	return e.Dispose
}

// Dispose tears the container down. Later dispatches are ignored.
func (c *Container) Dispose() {
	c.owner.Dispose()
}

// Disposed reports whether the container, or the parent owner it was
// created under, has been disposed.
func (c *Container) Disposed() bool {
	return c.owner.IsDisposed()
}

func (c *Container) applyStatus(a StatusAction) {
	c.apply(a, func() bool {
		return c.status.Update(func(s *Status) *Status { return ReduceStatus(s, a) })
	})
}

func (c *Container) applyParams(a ParamsAction) {
	if u, ok := a.(UpdateParams); ok {
		if keys := u.Params.Unsets(); len(keys) > 0 && !c.Disposed() {
			c.logger.Debug("recipes: params unset", "keys", keys)
		}
	}
	c.apply(a, func() bool {
		return c.params.Update(func(s *Params) *Params { return ReduceParams(s, a) })
	})
}

func (c *Container) applyList(a ListAction) {
	c.apply(a, func() bool {
		return c.list.Update(func(s *List) *List { return ReduceList(s, a) })
	})
}

func (c *Container) apply(a Action, reduce func() bool) {
	if c.Disposed() {
		return
	}
	changed := reduce()
	c.logger.Debug("recipes: dispatch",
		"slice", a.Slice().String(),
		"kind", a.Kind().String(),
		"changed", changed,
	)
	for _, h := range c.hooks {
		h(a, changed)
	}
	if !reactive.InBatch() {
		c.flush()
	}
}

func (c *Container) flush() {
	c.owner.RunPendingEffects()
}
