package symbol

import "github.com/gogpu/tileworker/glyph"

// box is an axis-aligned placement footprint in tile-local units.
type box struct {
	minX, minY, maxX, maxY int32
}

func (a box) intersects(b box) bool {
	return a.minX < b.maxX && a.maxX > b.minX && a.minY < b.maxY && a.maxY > b.minY
}

// CollisionTile is the placement-configuration-scoped collision index
// described in spec §3 ("CollisionTile") and §4.3 step 1: constructed once
// per attemptPlacement run from a PlacementConfig, then consumed by every
// SymbolLayout's Place call in symbol drawing order so later (lower
// priority) layers yield to earlier ones already occupying the tile.
//
// CollisionTile is not safe for concurrent use; it is built and consumed
// entirely within one single-threaded placement run (spec §5).
type CollisionTile struct {
	Zoom           float64
	Pitch          float64
	Bearing        float64
	CollisionDebug bool

	placed []box
}

// NewCollisionTile constructs a CollisionTile from a placement
// configuration's zoom/pitch/bearing/debug fields (spec §4.3 step 1).
func NewCollisionTile(zoom, pitch, bearing float64, collisionDebug bool) *CollisionTile {
	return &CollisionTile{Zoom: zoom, Pitch: pitch, Bearing: bearing, CollisionDebug: collisionDebug}
}

// boxFor computes the placement footprint of inst under this tile's view
// configuration. Pitch tilts text labels, which this simplified model
// approximates as a footprint widened proportionally to pitch; full
// perspective-correct label projection is a renderer concern.
func (t *CollisionTile) boxFor(inst Instance, positions glyph.Positions) box {
	const glyphHeight = int32(16)
	width := inst.width(positions)
	if width == 0 {
		width = glyphHeight
	}

	pitchFactor := 1.0 + t.Pitch/90.0
	halfW := int32(float64(width) * pitchFactor / 2)
	halfH := glyphHeight / 2

	return box{
		minX: inst.Anchor.X - halfW,
		minY: inst.Anchor.Y - halfH,
		maxX: inst.Anchor.X + halfW,
		maxY: inst.Anchor.Y + halfH,
	}
}

// tryPlace reserves b if it does not overlap any box already placed on
// this tile, returning whether it was reserved. Earlier calls always win:
// the Layout Engine's symbol drawing order (spec §4.2 step 1, reverse
// layer order) determines priority by determining call order here.
func (t *CollisionTile) tryPlace(b box) bool {
	if !t.CollisionDebug {
		for _, placed := range t.placed {
			if placed.intersects(b) {
				return false
			}
		}
	}
	t.placed = append(t.placed, b)
	return true
}

// PlacedCount returns the number of boxes reserved on this tile so far,
// for tests and diagnostics.
func (t *CollisionTile) PlacedCount() int {
	return len(t.placed)
}
