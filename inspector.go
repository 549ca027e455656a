package willowdom

import (
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/willowdom/overlay"
	"github.com/rs/zerolog"
)

// DefaultUpdateInterval is the time between reconciliation passes.
const DefaultUpdateInterval = 200 * time.Millisecond

// Option configures an Inspector.
type Option func(*options)

type options struct {
	log      zerolog.Logger
	registry *Registry
	interval time.Duration
	now      func() time.Time
}

// WithLogger sets the logger. Passes and ignored edits are logged at debug
// level. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRegistry shares an existing registry instead of creating an empty one.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithUpdateInterval sets the initial interval between passes.
func WithUpdateInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithClock replaces time.Now for Tick scheduling.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Inspector mirrors a source tree onto an overlay surface and writes edits
// made on the overlay back to the source.
//
// All passes, edit delivery and Do callbacks are serialized on one mutex, so
// an Inspector may be driven from a frame loop (Tick) and a ticker (Run) at
// the same time.
type Inspector[N comparable] struct {
	mu       sync.Mutex
	graph    Graph[N]
	root     N
	doc      *overlay.Document
	surface  *overlay.Surface
	rec      *reconciler[N]
	observer *overlay.Observer
	mirror   *overlay.Element
	log      zerolog.Logger

	interval time.Duration
	reset    chan time.Duration
	now      func() time.Time
	last     time.Time
}

// New mirrors root onto surface and starts watching the mirror for edits.
// The first pass runs before New returns.
func New[N comparable](graph Graph[N], root N, surface *overlay.Surface, opts ...Option) *Inspector[N] {
	o := options{
		log:      zerolog.Nop(),
		interval: DefaultUpdateInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	if o.interval <= 0 {
		o.interval = DefaultUpdateInterval
	}
	if surface == nil {
		surface = overlay.NewSurface(0, 0)
	}

	doc := overlay.NewDocument()
	in := &Inspector[N]{
		graph:    graph,
		root:     root,
		doc:      doc,
		surface:  surface,
		log:      o.log,
		interval: o.interval,
		reset:    make(chan time.Duration, 1),
		now:      o.now,
	}
	in.rec = &reconciler[N]{
		graph:    graph,
		registry: o.registry,
		pool:     newPool(graph, doc, surface.Sheet()),
		surface:  surface,
		log:      o.log,
	}
	in.observer = doc.NewObserver(in.rec.writeBackAll)

	prevPick := surface.OnPick
	surface.OnPick = func(el *overlay.Element, b overlay.MouseButton) {
		if el.Target != nil {
			setPicked(el.Target)
			in.log.Info().Str("tag", el.Tag()).Str("id", el.ID()).Msg("picked")
		}
		if prevPick != nil {
			prevPick(el, b)
		}
	}

	in.Update()
	return in
}

// Bind projects field of every node of kind as an attribute. A nil parser
// means DefaultParser.
func (in *Inspector[N]) Bind(kind Kind, field string, p Parser) *Inspector[N] {
	in.rec.registry.Register(kind, Attribute{Name: field, Parser: p})
	return in
}

// Leaf stops the inspector from mirroring the children of kind.
func (in *Inspector[N]) Leaf(kind Kind) *Inspector[N] {
	in.rec.registry.MarkLeaf(kind)
	return in
}

// Hide hides the mirrors of kind.
func (in *Inspector[N]) Hide(kind Kind) *Inspector[N] {
	in.rec.registry.MarkHidden(kind)
	return in
}

// Registry returns the registry the inspector resolves bindings from.
func (in *Inspector[N]) Registry() *Registry {
	return in.rec.registry
}

// Document returns the overlay document the mirror lives in.
func (in *Inspector[N]) Document() *overlay.Document {
	return in.doc
}

// Surface returns the overlay surface.
func (in *Inspector[N]) Surface() *overlay.Surface {
	return in.surface
}

// Root returns the mirror of the source root.
func (in *Inspector[N]) Root() *overlay.Element {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.mirror
}

// Stats returns the statistics of the last pass.
func (in *Inspector[N]) Stats() Stats {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rec.stats
}

// UpdateInterval returns the time between passes.
func (in *Inspector[N]) UpdateInterval() time.Duration {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.interval
}

// SetUpdateInterval changes the time between passes. A running Run loop
// switches to the new interval without running an extra pass. Non-positive
// values restore DefaultUpdateInterval.
func (in *Inspector[N]) SetUpdateInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultUpdateInterval
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.interval = d
	select {
	case <-in.reset:
	default:
	}
	in.reset <- d
}

// Update runs one pass now.
func (in *Inspector[N]) Update() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.update()
}

// Tick runs a pass when at least UpdateInterval has passed since the last
// one. Call it once per frame. It reports whether a pass ran.
func (in *Inspector[N]) Tick() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.now().Sub(in.last) < in.interval {
		return false
	}
	in.update()
	return true
}

// Run runs a pass every UpdateInterval until ctx is done.
func (in *Inspector[N]) Run(ctx context.Context) error {
	t := time.NewTicker(in.UpdateInterval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d := <-in.reset:
			t.Reset(d)
		case <-t.C:
			in.Update()
		}
	}
}

// Do runs fn while no pass or edit delivery is in progress, passing it the
// mirror root. Use it to mutate the source tree or edit the mirror from
// another goroutine.
func (in *Inspector[N]) Do(fn func(mirror *overlay.Element)) {
	in.mu.Lock()
	defer in.mu.Unlock()
	fn(in.mirror)
}

// HandleInput feeds one frame of input to the surface. dt is in seconds.
func (in *Inspector[N]) HandleInput(input overlay.Input, dt float32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.surface.Update(in.mirror, input, dt)
}

// Draw paints the surface highlights onto screen.
func (in *Inspector[N]) Draw(screen *ebiten.Image) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.surface.Draw(screen, in.mirror)
}

// update runs one pass. Pending edits are delivered first, then observation
// is suspended until the pass returns, even if it panics.
func (in *Inspector[N]) update() {
	in.doc.Flush()

	sheet := in.surface.Sheet()
	sheet.SetDisabled(true)
	in.observer.Disconnect()
	defer func() {
		in.observer.Observe(in.mirror)
		sheet.SetDisabled(false)
	}()

	if p, ok := in.graph.(Preparer[N]); ok {
		in.prepare(p)
	}

	pool := in.rec.pool
	created, reused, freed := pool.created, pool.reused, pool.freed
	passes := in.rec.stats.Passes + 1
	in.rec.stats = Stats{Passes: passes}

	start := time.Now()
	in.mirror = in.rec.sync(in.root, in.mirror)
	in.last = in.now()

	in.rec.stats.Created = pool.created - created
	in.rec.stats.Recycled = pool.reused - reused
	in.rec.stats.Released = pool.freed - freed
	in.rec.stats.log(in.log.Debug()).Dur("took", time.Since(start)).Msg("reconciled")
}

func (in *Inspector[N]) prepare(p Preparer[N]) {
	defer func() {
		if rec := recover(); rec != nil {
			in.log.Debug().Interface("panic", rec).Msg("prepare failed")
		}
	}()
	p.Prepare(in.root)
}

var (
	pickedMu sync.Mutex
	picked   any
)

// Picked returns the source node most recently picked on any surface, or nil.
// It exists for ad-hoc inspection from a debugger or REPL.
func Picked() any {
	pickedMu.Lock()
	defer pickedMu.Unlock()
	return picked
}

func setPicked(v any) {
	pickedMu.Lock()
	picked = v
	pickedMu.Unlock()
}
