package tileworker

import (
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/symbol"
)

// attemptPlacement implements spec §4.3: builds a fresh CollisionTile from
// the current placement config and places every symbol layout produced by
// the last layout, in the order redoLayout stored them: reverse layer
// order, so the topmost symbol layer claims collision space first. Prepare
// runs only for layouts still Pending.
//
// It returns nil when data, layers, or a placement config isn't present
// yet, or while dependencies from the last layout are still outstanding
// (spec §4.3 guard).
func (w *Worker) attemptPlacement() *PlacementResult {
	if w.data.State() == NoData || w.layers == nil || !w.placementConfigPresent || w.deps.hasPending() {
		return nil
	}

	tile := symbol.NewCollisionTile(
		w.placementConfig.Zoom,
		w.placementConfig.Pitch,
		w.placementConfig.Bearing,
		w.placementConfig.CollisionDebug,
	)

	buckets := make(map[string]geom.Bucket, len(w.symbolLayouts))
	for _, entry := range w.symbolLayouts {
		if w.obsolete.IsSet() {
			return nil
		}
		if entry.layout.State() == symbol.Pending {
			entry.layout.Prepare(w.deps.glyphPositions, w.deps.icons)
		}
		b := entry.layout.Place(tile)
		if b == nil || !b.HasData() {
			continue
		}
		buckets[entry.leaderID] = b
	}

	return &PlacementResult{
		TileID:        w.id,
		Buckets:       buckets,
		CollisionTile: tile,
		CorrelationID: w.correlationID,
	}
}
