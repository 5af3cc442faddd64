package tileworker

import (
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
)

// dependencyTracker implements spec §4.1: tracks which glyphs (per font)
// and which icon atlases are required versus present, and whether the
// worker is currently waiting on either provider to answer.
type dependencyTracker struct {
	waitingForGlyphs bool
	waitingForIcons  bool
	glyphPositions   glyph.Positions
	icons            icon.Atlases
}

func newDependencyTracker() *dependencyTracker {
	return &dependencyTracker{
		glyphPositions: glyph.Positions{},
		icons:          icon.Atlases{},
	}
}

// hasGlyphDependencies reports whether every (font, glyph) pair in req is
// already resolved in glyphPositions.
func (t *dependencyTracker) hasGlyphDependencies(req glyph.Dependencies) bool {
	return t.glyphPositions.Satisfies(req)
}

// hasIconDependencies reports whether every atlas ID in req is already
// resolved in icons.
func (t *dependencyTracker) hasIconDependencies(req icon.Dependencies) bool {
	return t.icons.Satisfies(req)
}

// hasPending reports whether the tracker is waiting on a response from
// either provider.
func (t *dependencyTracker) hasPending() bool {
	return t.waitingForGlyphs || t.waitingForIcons
}

// requestGlyphs clears any previously resolved positions and marks
// waitingForGlyphs. Clearing is intentional (spec §4.1, §9): a fresh
// layout may shift the required set, so partial leftovers from a prior
// layout are discarded rather than merged.
func (t *dependencyTracker) requestGlyphs() {
	t.glyphPositions = glyph.Positions{}
	t.waitingForGlyphs = true
}

// requestIcons is requestGlyphs' symmetric counterpart for icon atlases.
func (t *dependencyTracker) requestIcons() {
	t.icons = icon.Atlases{}
	t.waitingForIcons = true
}

func (t *dependencyTracker) onGlyphsAvailable(p glyph.Positions) {
	t.glyphPositions = p
	t.waitingForGlyphs = false
}

func (t *dependencyTracker) onIconsAvailable(a icon.Atlases) {
	t.icons = a
	t.waitingForIcons = false
}
