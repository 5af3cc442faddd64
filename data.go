package tileworker

import "github.com/gogpu/tileworker/layer"

// DataState distinguishes a tile that has never been given data from one
// confirmed to carry no content, resolving spec §9's open question on
// `setData`'s empty-vs-absent semantics (SPEC_FULL.md §D.1).
type DataState uint8

const (
	// NoData is the zero value: setData has never replaced this tile's
	// data.
	NoData DataState = iota
	// EmptyData means setData was called with a tile confirmed to carry
	// zero features for every source layer — a valid terminal state
	// (spec §3 invariant: "a present-null value is a valid terminal state
	// meaning 'no content'").
	EmptyData
	// Present means setData was called with an actual source-layer map.
	Present
)

// TileData is the opaque per-tile geometry handle the Layout Engine reads
// from: layers can be looked up by source-layer name, each yielding a
// finite feature sequence (spec §3 "TileData").
//
// The zero value is NoData; use NewTileData or EmptyTileData to construct
// the other two variants explicitly.
type TileData struct {
	state  DataState
	layers map[string]layer.GeometryLayer
}

// NewTileData returns a Present TileData over the given source layers.
func NewTileData(layers map[string]layer.GeometryLayer) TileData {
	return TileData{state: Present, layers: layers}
}

// EmptyTileData returns an EmptyData TileData: the tile was fetched and
// confirmed to carry no features.
func EmptyTileData() TileData {
	return TileData{state: EmptyData}
}

// State reports which of the three variants d is.
func (d TileData) State() DataState { return d.state }

// SourceLayer looks up a source layer by name. ok is false unless d is
// Present and name is one of its source layers.
func (d TileData) SourceLayer(name string) (layer.GeometryLayer, bool) {
	if d.state != Present {
		return nil, false
	}
	gl, ok := d.layers[name]
	return gl, ok
}

// clone returns the onLayout data-clone value: nil for NoData (setData has
// never replaced this tile's data, so there is nothing to clone), or a
// pointer to a shallow copy of d for EmptyData/Present — EmptyData clones
// to a non-nil-but-empty TileData, matching redoLayout actually running to
// completion and emitting a result for it (SPEC_FULL.md §D.1).
func (d TileData) clone() *TileData {
	if d.state == NoData {
		return nil
	}
	cp := TileData{state: d.state, layers: make(map[string]layer.GeometryLayer, len(d.layers))}
	for k, v := range d.layers {
		cp.layers[k] = v
	}
	return &cp
}

// PlacementConfig is the view configuration a placement run resolves
// symbol collisions under (spec §3 "PlacementConfig").
type PlacementConfig struct {
	Zoom, Pitch, Bearing float64
	CollisionDebug       bool
}
