// Package glyph holds the glyph dependency/position domain types used by
// the Dependency Tracker and Layout Engine (spec §3, §4.1, §4.2 step 5):
// which (font, glyph) pairs a layout needs, and the rasterized positions a
// glyph provider answers back with.
//
// Glyph identifiers are github.com/go-text/typesetting's own GID type
// rather than a reinvented one, so a real shaping pipeline upstream of this
// worker (go-text/typesetting/shaping) can hand its output straight to
// GlyphDependencies without conversion. Full shaping is out of scope here
// (spec §1 Non-goals: "text shaping details beyond requesting glyph
// positions") — this package only carries the identifiers and metrics.
package glyph

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// ID identifies one glyph within a font.
type ID = font.GID

// FontID identifies a font stack entry as the style layer named it
// (e.g. "Open Sans Regular"), plus the BCP-47 language tag the symbol
// layout requested it for. The tag is what Positions.Fallback uses to find a
// substitute when the exact font isn't locally available.
type FontID struct {
	Name string
	Tag  language.Tag
}

// Dependencies is the set of (font, glyph) pairs a layout run requires,
// collected across every symbol layout during redoLayout (spec §4.2 step
// 5: "collected glyph dependencies").
type Dependencies map[FontID]map[ID]struct{}

// Add records that font requires glyph. d must be non-nil (create it with
// NewDependencies); Add panics on a nil Dependencies.
func (d Dependencies) Add(font FontID, g ID) {
	set, ok := d[font]
	if !ok {
		set = make(map[ID]struct{})
		d[font] = set
	}
	set[g] = struct{}{}
}

// NewDependencies returns an empty, ready-to-use Dependencies set.
func NewDependencies() Dependencies {
	return make(Dependencies)
}

// IsEmpty reports whether no font requires any glyph.
func (d Dependencies) IsEmpty() bool {
	for _, set := range d {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Position is the rasterized placement metric for one glyph, as answered
// by a glyph provider in response to getGlyphs.
type Position struct {
	// Advance is the horizontal advance in 26.6 fixed point, matching the
	// fixed-point convention go-text/typesetting's shaping package uses.
	Advance fixed.Int26_6
	// Metrics is the rasterized glyph's ascent/descent/bearing box.
	Metrics GlyphMetrics
}

// GlyphMetrics is the bounding box and bearing of a rasterized glyph,
// relative to its origin.
type GlyphMetrics struct {
	Width, Height int32
	BearingX      int32
	BearingY      int32
}

// Positions is a mapping from font to glyph to rasterized position,
// satisfying a Dependencies set when every required pair is present
// (spec §3 "GlyphPositions").
type Positions map[FontID]map[ID]Position

// Satisfies reports whether every (font, glyph) pair in req has an entry
// in p (spec §4.1 hasGlyphDependencies).
func (p Positions) Satisfies(req Dependencies) bool {
	for f, glyphs := range req {
		have, ok := p[f]
		if !ok {
			return false
		}
		for g := range glyphs {
			if _, ok := have[g]; !ok {
				return false
			}
		}
	}
	return true
}

// Fallback finds a font already present in p whose language tag is the
// closest BCP-47 match to want, for use when the exact FontID requested by
// a symbol layout is not available locally. It implements the stable
// identifier scheme spec.md §9's first open question left unspecified for
// icon atlases, applied here to fonts: a FontID compares by (Name, Tag)
// value, never by pointer, so two requests for the same font+language
// always resolve to the same cached entry.
func (p Positions) Fallback(want FontID) (FontID, bool) {
	if _, ok := p[want]; ok {
		return want, true
	}
	if len(p) == 0 {
		return FontID{}, false
	}

	tags := make([]language.Tag, 0, len(p))
	candidates := make([]FontID, 0, len(p))
	for f := range p {
		if f.Name != want.Name {
			continue
		}
		tags = append(tags, f.Tag)
		candidates = append(candidates, f)
	}
	if len(tags) == 0 {
		return FontID{}, false
	}

	matcher := language.NewMatcher(tags)
	_, index, _ := matcher.Match(want.Tag)
	if index < 0 || index >= len(candidates) {
		return FontID{}, false
	}
	return candidates[index], true
}
