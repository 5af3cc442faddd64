package tileworker

import (
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/internal/featureindex"
	"github.com/gogpu/tileworker/layer"
	"github.com/gogpu/tileworker/symbol"
)

// placeableSymbolLayout extends layer.SymbolLayout with the operations the
// Placement Engine needs. It is declared here, not in layer, so that layer
// need not import symbol; *symbol.Layout satisfies it structurally.
type placeableSymbolLayout interface {
	layer.SymbolLayout
	State() symbol.State
	Place(tile *symbol.CollisionTile) geom.Bucket
}

// symbolLayoutEntry pairs a symbol layout with the leader layer ID its
// bucket is filed under, so attemptPlacement can report results keyed the
// same way doLayout does.
type symbolLayoutEntry struct {
	leaderID string
	layout   placeableSymbolLayout
}

// redoLayout implements spec §4.2: regroups the current layer stack,
// rebuilds every group's bucket (and, for symbol groups, its pending
// layout), repopulates the feature index, requests any missing glyph/icon
// dependencies, and returns the LayoutResult; missing dependencies hold
// back the following placement, not this result.
//
// It returns nil when there is nothing to do (missing data or layers) or
// when the tile has gone obsolete mid-build; the caller treats either as
// "no result this round".
func (w *Worker) redoLayout() *LayoutResult {
	if w.data.State() == NoData || w.layers == nil {
		return nil
	}

	groups := layer.GroupLayers(w.layers)
	idx := featureindex.New(w.featureIndexCellSize)
	buckets := make(map[string]geom.Bucket, len(groups))
	symbolLayouts := make([]symbolLayoutEntry, 0)

	glyphDeps := glyph.NewDependencies()
	iconDeps := icon.NewDependencies()

	params := layer.BucketParameters{
		TileZ:       w.id.Z,
		TileX:       w.id.X,
		TileY:       w.id.Y,
		OverscaledZ: w.id.OverscaledZ,
		Zoom:        w.placementConfig.Zoom,
	}

	for _, group := range groups {
		if w.obsolete.IsSet() {
			return nil
		}

		leader := group.Leader
		gl, hasLayer := w.data.SourceLayer(leader.SourceLayer)

		idx.RegisterGroup(leader.ID, group.MemberIDs())

		switch leader.Kind {
		case layer.KindSymbol:
			// gl is nil when the tile has no data for this source layer.
			if leader.SymbolLayoutFactory == nil {
				continue
			}
			sl := leader.SymbolLayoutFactory(params, group, gl, glyphDeps, iconDeps)
			pl, ok := sl.(placeableSymbolLayout)
			if !ok {
				continue
			}
			symbolLayouts = append(symbolLayouts, symbolLayoutEntry{leaderID: leader.ID, layout: pl})
		default:
			if !hasLayer || leader.BucketFactory == nil {
				continue
			}
			b := leader.BucketFactory(params, group)
			if b == nil {
				continue
			}
			for i := 0; i < gl.Len(); i++ {
				f := gl.Feature(i)
				if leader.Filter != nil && !leader.Filter(f.Type, f.ID, f.Properties) {
					continue
				}
				b.AddFeature(f, f.Geometries)
				idx.Insert(f.Geometries, i, leader.SourceLayer, leader.ID)
			}
			if b.HasData() {
				buckets[leader.ID] = b
			}
		}
	}

	// Symbol drawing order is reverse layer order: the topmost symbol layer
	// is placed first and wins collisions against the ones below it.
	for i, j := 0, len(symbolLayouts)-1; i < j; i, j = i+1, j-1 {
		symbolLayouts[i], symbolLayouts[j] = symbolLayouts[j], symbolLayouts[i]
	}
	w.symbolLayouts = symbolLayouts

	// Dependency check (spec §4.2 step 5): request whatever is missing.
	// Resolution is awaited by the Placement Engine, not here — onLayout
	// is emitted unconditionally below once data/layers are present.
	if !w.deps.hasGlyphDependencies(glyphDeps) {
		w.deps.requestGlyphs()
		w.parent.GetGlyphs(glyphDeps)
	}
	if !w.deps.hasIconDependencies(iconDeps) {
		w.deps.requestIcons()
		w.parent.GetIcons(iconDeps)
	}

	return &LayoutResult{
		TileID:        w.id,
		Buckets:       buckets,
		FeatureIndex:  idx,
		DataClone:     w.data.clone(),
		CorrelationID: w.correlationID,
	}
}
