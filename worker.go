package tileworker

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/internal/obsolete"
	"github.com/gogpu/tileworker/layer"
)

// defaultMailboxCapacity sized to absorb a burst of set* calls queued
// while a layout or placement run is in flight, without the sender
// blocking on the worker's own work (spec §4.4).
const defaultMailboxCapacity = 64

// State is the worker's externally-observable phase (spec §4.4). It is
// exposed for logging and tests; callers never need to branch on it.
type State uint8

const (
	// Idle: no layout or placement is pending or running.
	Idle State = iota
	// Coalescing: set by onCoalesced just before a layout or placement run;
	// a completed run replaces it with NeedPlacement or Idle.
	Coalescing
	// NeedLayout: the next coalesced round will run the Layout Engine.
	NeedLayout
	// NeedPlacement: the next coalesced round will run the Placement
	// Engine (no layout changes are pending).
	NeedPlacement
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Coalescing:
		return "coalescing"
	case NeedLayout:
		return "need-layout"
	case NeedPlacement:
		return "need-placement"
	default:
		return "unknown"
	}
}

// Worker is the single-threaded actor described by spec §1-§4: it owns one
// tile's geometry, style layers, and placement config, and drives the
// Layout and Placement Engines in response to inbound messages, emitting
// results to its Parent.
//
// All of Worker's internal fields are touched only from the run goroutine;
// the public Set*/On*/Close methods communicate with it exclusively over
// the inbox channel.
type Worker struct {
	id       TileID
	parent   Parent
	obsolete *obsolete.Flag
	log      *slog.Logger

	featureIndexCellSize int

	inbox  chan inboundMessage
	closed atomic.Bool
	wg     sync.WaitGroup

	// state machine fields, owned by run().
	state                  State
	coalescePending        bool
	data                   TileData
	layers                 []layer.Descriptor
	placementConfig        PlacementConfig
	placementConfigPresent bool
	correlationID          CorrelationID
	deps                   *dependencyTracker
	symbolLayouts          []symbolLayoutEntry
}

// New creates a Worker for the given tile, paired with parent and the
// obsolescence flag parent owns for it (spec §3 "Tile identity", §5).
// The worker starts its mailbox goroutine immediately; callers must call
// Close when done with it.
func New(id TileID, parent Parent, obsoleteFlag *obsolete.Flag, opts ...WorkerOption) *Worker {
	o := defaultWorkerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &Worker{
		id:                    id,
		parent:                parent,
		obsolete:              obsoleteFlag,
		log:                   o.logger,
		featureIndexCellSize:  o.featureIndexCellSize,
		inbox:                 make(chan inboundMessage, o.mailboxCapacity),
		deps:                  newDependencyTracker(),
	}

	w.wg.Add(1)
	go w.run()
	return w
}

// SetData replaces the tile's geometry (spec §4.1 "setData").
func (w *Worker) SetData(data TileData, correlationID CorrelationID) {
	w.send(setDataMsg{data: data, correlationID: correlationID})
}

// SetLayers replaces the tile's style layer stack (spec §4.1 "setLayers").
func (w *Worker) SetLayers(layers []layer.Descriptor, correlationID CorrelationID) {
	w.send(setLayersMsg{layers: layers, correlationID: correlationID})
}

// SetPlacementConfig replaces the view configuration placement resolves
// collisions under (spec §4.1 "setPlacementConfig").
func (w *Worker) SetPlacementConfig(config PlacementConfig, correlationID CorrelationID) {
	w.send(setPlacementConfigMsg{config: config, correlationID: correlationID})
}

// OnGlyphsAvailable delivers glyph positions requested via Parent.GetGlyphs
// (spec §4.1 "onGlyphsAvailable").
func (w *Worker) OnGlyphsAvailable(positions glyph.Positions) {
	w.send(onGlyphsAvailableMsg{positions: positions})
}

// OnIconsAvailable delivers icon atlases requested via Parent.GetIcons
// (spec §4.1 "onIconsAvailable").
func (w *Worker) OnIconsAvailable(atlases icon.Atlases) {
	w.send(onIconsAvailableMsg{atlases: atlases})
}

// Close stops the worker's mailbox goroutine and blocks until it has
// exited. Close is idempotent and safe to call more than once.
func (w *Worker) Close() {
	if !w.closed.CompareAndSwap(false, true) {
		w.wg.Wait()
		return
	}
	close(w.inbox)
	w.wg.Wait()
}

func (w *Worker) send(msg inboundMessage) {
	if w.closed.Load() {
		w.parent.OnError(ErrWorkerClosed)
		return
	}
	defer func() { recover() }() // inbox may have been closed concurrently
	w.inbox <- msg
}

func (w *Worker) run() {
	defer w.wg.Done()
	for msg := range w.inbox {
		w.handle(msg)
	}
}

func (w *Worker) handle(msg inboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("tileworker: recovered panic handling message", "tile", w.id, "panic", r)
			w.parent.OnError(newHandlerError(r))
		}
	}()

	switch m := msg.(type) {
	case setDataMsg:
		w.data = m.data
		w.correlationID = m.correlationID
		w.onDataOrLayersChanged()
	case setLayersMsg:
		w.layers = m.layers
		w.correlationID = m.correlationID
		w.onDataOrLayersChanged()
	case setPlacementConfigMsg:
		w.placementConfig = m.config
		w.placementConfigPresent = true
		w.correlationID = m.correlationID
		w.onSetPlacementConfig()
	case onGlyphsAvailableMsg:
		w.deps.onGlyphsAvailable(m.positions)
		w.onDependencyUpdated()
	case onIconsAvailableMsg:
		w.deps.onIconsAvailable(m.atlases)
		w.onDependencyUpdated()
	case coalescedMsg:
		w.onCoalesced()
	}
}

// onDataOrLayersChanged handles spec §4.1's setData/setLayers: a layout is
// always required, which supersedes any placement-only work already
// scheduled (spec §4.4: layout wins over placement, S3).
func (w *Worker) onDataOrLayersChanged() {
	w.state = NeedLayout
	w.maybeSchedule()
}

// onSetPlacementConfig handles spec §4.1's setPlacementConfig. If a
// layout is already scheduled it is left alone (layout implies a
// placement once it completes); otherwise placement is scheduled.
func (w *Worker) onSetPlacementConfig() {
	if w.state != NeedLayout {
		w.state = NeedPlacement
	}
	w.maybeSchedule()
}

// onDependencyUpdated handles spec §4.1's onGlyphsAvailable/
// onIconsAvailable: once every outstanding dependency is resolved, the
// worker retries whatever work is pending.
func (w *Worker) onDependencyUpdated() {
	if w.deps.hasPending() {
		return
	}
	w.maybeSchedule()
}

// maybeSchedule ensures exactly one coalescedMsg is in flight whenever
// there is pending work, deferring the actual doLayout/doPlacement call
// until every message already queued ahead of it has updated the
// worker's fields (spec §4.4 "Coalesced").
func (w *Worker) maybeSchedule() {
	if w.state == Idle || w.coalescePending {
		return
	}
	w.coalescePending = true
	w.postCoalesced()
}

func (w *Worker) postCoalesced() {
	select {
	case w.inbox <- coalescedMsg{}:
	default:
		// Mailbox full: the pending flag still guarantees a coalesced
		// round will eventually run once space frees up, since every
		// handler path re-checks state before clearing coalescePending.
		go func() { w.inbox <- coalescedMsg{} }()
	}
}

// onCoalesced is the only place doLayout/doPlacement actually run: by the
// time this self-posted marker is dequeued, every set*/on* message from
// the originating burst has already updated state and correlationID, so
// the work below acts on the burst's final values (spec §8 S1).
func (w *Worker) onCoalesced() {
	w.coalescePending = false

	switch w.state {
	case NeedLayout:
		w.state = Coalescing
		w.doLayout()
	case NeedPlacement:
		w.state = Coalescing
		w.doPlacement()
	default:
		return
	}
}

func (w *Worker) doLayout() {
	result := w.redoLayout()
	if w.obsolete.IsSet() {
		w.state = Idle
		return
	}
	if result == nil {
		// Guard failure: data or layers never set. Nothing to retry until
		// one of them is (which will re-enter NeedLayout on its own).
		w.state = Idle
		return
	}
	w.parent.OnLayout(*result)

	// A layout always implies a placement pass over its fresh symbol
	// layouts (spec §4.2 step 7).
	w.state = NeedPlacement
	w.maybeSchedule()
}

func (w *Worker) doPlacement() {
	result := w.attemptPlacement()
	if w.obsolete.IsSet() {
		w.state = Idle
		return
	}
	if result == nil {
		// Stay NeedPlacement only if a dependency resolution will retry
		// this placement later; otherwise there is nothing left to wait
		// for (spec §4.3 guard: missing data/layers/config is "no work").
		w.state = Idle
		if w.deps.hasPending() {
			w.state = NeedPlacement
		}
		return
	}
	w.parent.OnPlacement(*result)
	w.state = Idle
}
