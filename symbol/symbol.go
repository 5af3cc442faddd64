// Package symbol implements the per-symbol-layer two-phase layout
// structure and the collision-resolving placement primitive described in
// spec §3 ("SymbolLayout", "CollisionTile") and §4.3 (Placement Engine).
package symbol

import (
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/layer"
)

// State is a SymbolLayout's two-phase lifecycle (spec §3, §9): Prepare is
// idempotent-by-state, so a layout surviving across repeated placements
// for different configurations only resolves its dependencies once, while
// Place re-runs collision detection on every call after Prepare.
type State uint8

const (
	Pending State = iota
	Prepared
	Placed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Prepared:
		return "Prepared"
	case Placed:
		return "Placed"
	default:
		return "Unknown"
	}
}

// Instance is one label/icon anchor a symbol layer's features produced,
// carried through layout until a CollisionTile either keeps or drops it.
type Instance struct {
	FeatureID uint64
	Anchor    geom.Point
	Font      glyph.FontID
	Glyphs    []glyph.ID
	Icon      icon.AtlasID
	HasIcon   bool
}

// width estimates the instance's on-screen text extent in whole units
// (each 26.6 fixed-point advance shifted down by 6) using resolved glyph
// advances, falling back to a fixed per-glyph
// width when a glyph's position hasn't been resolved (Prepare guarantees
// every glyph in GlyphDependencies eventually has one, but Instance.width
// must not panic if called before Prepare).
func (inst Instance) width(positions glyph.Positions) int32 {
	const fallbackAdvance = 640 // 10px in 26.6 fixed point
	have, ok := positions[inst.Font]
	var total int32
	for _, g := range inst.Glyphs {
		if ok {
			if pos, ok := have[g]; ok {
				total += int32(pos.Advance) >> 6
				continue
			}
		}
		total += fallbackAdvance >> 6
	}
	return total
}

// Layout is the per-symbol-layer structure spec §3 describes: owns its
// layer paint-properties map, collects glyph/icon dependencies as it is
// built, and moves Pending -> Prepared -> Placed exactly once per layout
// run (spec invariant #6: "never reused across layout runs").
type Layout struct {
	leaderID        string
	paintProperties map[string]any
	instances       []Instance

	state     State
	positions glyph.Positions
	icons     icon.Atlases
}

// NewLayout builds a Layout for group's leader, scanning geometryLayer's
// features for symbol instances and recording every (font, glyph) and
// icon-atlas dependency they require into glyphDeps/iconDeps (spec §4.2
// step 3 "two out-parameters that accumulate glyph and icon
// dependencies"). geometryLayer may be nil (tile has no data for this
// source layer yet), producing a Layout with no instances.
//
// extractInstance turns one decoded feature into zero or one Instance;
// it is supplied by the caller because how a feature's label/icon
// properties map to glyphs and an atlas ID is a style/paint-property
// concern this package does not interpret (spec §1 "per-layer
// paint-property vertex attribute packing treated as a black box").
func NewLayout(group layer.Group, geometryLayer layer.GeometryLayer, extractInstance func(geom.Feature) (Instance, bool), glyphDeps glyph.Dependencies, iconDeps icon.Dependencies) *Layout {
	paint := make(map[string]any, len(group.Members))
	for _, m := range group.Members {
		paint[m.ID] = m.Transitions
	}

	l := &Layout{
		leaderID:        group.Leader.ID,
		paintProperties: paint,
	}

	if geometryLayer == nil {
		return l
	}

	for i := range geometryLayer.Len() {
		f := geometryLayer.Feature(i)
		inst, ok := extractInstance(f)
		if !ok {
			continue
		}
		for _, g := range inst.Glyphs {
			glyphDeps.Add(inst.Font, g)
		}
		if inst.HasIcon {
			iconDeps.Add(inst.Icon)
		}
		l.instances = append(l.instances, inst)
	}

	return l
}

// State returns the layout's current lifecycle state.
func (l *Layout) State() State { return l.state }

// LeaderID returns the layer ID this layout's bucket is keyed under.
func (l *Layout) LeaderID() string { return l.leaderID }

// HasSymbolInstances reports whether any feature produced a placeable
// instance.
func (l *Layout) HasSymbolInstances() bool { return len(l.instances) > 0 }

// PaintProperties returns the opaque paint-properties value for every
// layer ID sharing this layout's bucket.
func (l *Layout) PaintProperties() map[string]any { return l.paintProperties }

// Prepare resolves glyph/icon positions for this layout's instances.
// Idempotent by state: calling it more than once after the first
// Pending->Prepared transition is a no-op, matching spec §9's "prepare /
// place idempotent-by-state" guidance and §4.3's "dependency resolution
// runs during prepare, exactly once per layout".
func (l *Layout) Prepare(positions glyph.Positions, icons icon.Atlases) {
	if l.state != Pending {
		return
	}
	l.positions = positions
	l.icons = icons
	l.state = Prepared
}

// Place resolves collisions against tile's already-placed boxes and
// returns a bucket containing every instance that survived, or nil if
// nothing survived. Unlike Prepare, Place is not one-shot: dependency
// resolution happens exactly once per layout, but collision detection
// re-runs on every call, since the same prepared layout is placed again
// for every subsequent placement config (spec §4.3 step 2). Place is a
// no-op returning nil before Prepare has run, since there are no resolved
// glyph/icon positions yet to place against.
func (l *Layout) Place(tile *CollisionTile) geom.Bucket {
	if l.state == Pending {
		return nil
	}
	defer func() { l.state = Placed }()

	if !l.HasSymbolInstances() {
		return nil
	}

	b := &symbolBucket{}
	for _, inst := range l.instances {
		box := tile.boxFor(inst, l.positions)
		if tile.tryPlace(box) {
			b.placed = append(b.placed, inst)
		}
	}
	if len(b.placed) == 0 {
		return nil
	}
	return b
}

// symbolBucket is the Bucket a symbol layout's Place produces: the subset
// of instances that survived collision detection. It has no AddFeature
// path of its own (symbol buckets are built whole by Place, not
// incrementally like non-symbol buckets), so AddFeature is a no-op.
type symbolBucket struct {
	placed []Instance
}

func (b *symbolBucket) AddFeature(geom.Feature, []geom.Geometry) {}

func (b *symbolBucket) HasData() bool { return len(b.placed) > 0 }

// Placed returns the instances that survived collision detection, for
// tests and for renderer-side hit-testing of symbol buckets.
func (b *symbolBucket) Placed() []Instance { return b.placed }
