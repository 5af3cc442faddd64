// Package layer holds the style layer descriptor, layout-compatibility
// grouping, and filter evaluation used by the Layout Engine (spec §3
// "Layers", §4.2 steps 1-3).
//
// Style parsing itself is out of scope (spec §1): this package only
// defines the shape a style layer arrives in and the pure grouping
// function the worker treats as a black box ("grouping is provided by the
// layer module; the worker treats it as a pure function of layers").
package layer

import (
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
)

// Kind distinguishes symbol (label-bearing) layers from every other kind,
// the only distinction the worker itself needs (spec §3).
type Kind uint8

const (
	KindOther Kind = iota
	KindSymbol
)

// Filter evaluates a decoded feature's (type, id, properties) triple,
// mirroring spec §4.2 step 3's "evaluate the filter on
// (type, id, key->value)".
type Filter func(t geom.FeatureType, id uint64, properties map[string]geom.PropertyValue) bool

// GeometryLayer is the per-source-layer feature sequence a TileData
// yields for one source-layer name (spec §3 "TileData").
type GeometryLayer interface {
	Len() int
	Feature(i int) geom.Feature
}

// BucketParameters are the tile-scoped, layer-independent inputs every
// bucket factory and symbol layout factory needs: the tile's identity and
// the zoom it was requested at.
type BucketParameters struct {
	TileZ, TileX, TileY, OverscaledZ int
	Zoom                             float64
}

// BucketFactory builds the shared bucket for a non-symbol group, called
// once per group in redoLayout (spec §4.2 step 3 "create a shared bucket
// via the leader's bucket factory").
type BucketFactory func(params BucketParameters, group Group) geom.Bucket

// SymbolLayout is the two-phase {Pending, Prepared, Placed} structure a
// SymbolLayoutFactory produces (spec §3 "SymbolLayout", §4.3). Defined
// here as an interface so layer.Descriptor can reference it without this
// package depending on the symbol package's placement internals; the
// symbol package's *symbol.Layout satisfies it structurally.
type SymbolLayout interface {
	// Prepare resolves glyph/icon positions for every symbol instance.
	// Called at most once per layout run, during the first attemptPlacement
	// that finds this layout Pending (spec §4.3 step 2).
	Prepare(positions glyph.Positions, icons icon.Atlases)
	// HasSymbolInstances reports whether this layout produced any symbol
	// instance to place; an empty layout contributes no bucket.
	HasSymbolInstances() bool
	// PaintProperties returns the paint-properties value owned by each
	// layer ID sharing this layout's bucket (spec §4.3 step 2's "for each
	// (layerID, paintProperties) pair owned by the layout").
	PaintProperties() map[string]any
}

// SymbolLayoutFactory builds a SymbolLayout for a symbol group's leader,
// accumulating glyph/icon dependencies into glyphDeps/iconDeps as it goes
// (spec §4.2 step 3 "two out-parameters that accumulate glyph and icon
// dependencies"). geometryLayer is nil when the tile has no data for the
// group's source layer.
type SymbolLayoutFactory func(params BucketParameters, group Group, geometryLayer GeometryLayer, glyphDeps glyph.Dependencies, iconDeps icon.Dependencies) SymbolLayout

// Transition carries a paint-property's animated-transition timing
// (duration/delay) through to the bucket factory without this package
// interpreting it — paint-property attribute packing is out of scope
// (spec §1), but grouping still needs to carry it per member (see
// SPEC_FULL.md §D.3, grounded on original_source's transition_options.hpp).
type Transition struct {
	DurationMillis int
	DelayMillis    int
}

// Descriptor is one style layer as the worker sees it: enough to group,
// filter, and build a bucket, but nothing about how paint properties are
// packed into vertex attributes.
type Descriptor struct {
	ID          string
	SourceLayer string
	Filter      Filter
	Kind        Kind

	// LayoutKey is supplied by style parsing: two non-symbol descriptors
	// with an equal LayoutKey share one bucket (spec §4.2 step 2). Symbol
	// descriptors ignore LayoutKey; each gets its own SymbolLayout.
	LayoutKey string

	BucketFactory       BucketFactory
	SymbolLayoutFactory SymbolLayoutFactory

	Transitions map[string]Transition
}

// Group is one layout-compatibility group: a leader (the first member,
// whose factory builds the shared bucket or symbol layout) plus every
// member sharing it (spec §4.2 step 2, §9 "shared buckets across
// paint-property layers").
type Group struct {
	Leader  Descriptor
	Members []Descriptor
}

// MemberIDs returns the layer IDs of every member, leader included, in
// group order.
func (g Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// GroupLayers groups layers by layout compatibility (spec §4.2 step 2).
// Non-symbol layers merge into the most recently opened group only when
// they immediately follow it and share its LayoutKey; every symbol layer
// gets its own singleton group, since each produces an independent
// SymbolLayout rather than a shared bucket. Merging is adjacency-only —
// a layer can never rejoin an earlier, non-contiguous group, since that
// would change the effective draw order of the layers between them.
//
// This is a pure function of layers, matching spec §4.2's note that
// grouping is "provided by the layer module; the worker treats it as a
// pure function of layers."
func GroupLayers(layers []Descriptor) []Group {
	var groups []Group

	for _, l := range layers {
		if l.Kind == KindSymbol {
			groups = append(groups, Group{Leader: l, Members: []Descriptor{l}})
			continue
		}

		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if last.Leader.Kind != KindSymbol && last.Leader.LayoutKey == l.LayoutKey {
				last.Members = append(last.Members, l)
				continue
			}
		}

		groups = append(groups, Group{Leader: l, Members: []Descriptor{l}})
	}

	return groups
}
