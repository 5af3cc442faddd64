// Package icon holds the icon/sprite dependency domain types used by the
// Dependency Tracker and Layout Engine (spec §3, §4.1): which sprite
// atlases a layout needs, and the packed atlases a provider answers back
// with.
//
// AtlasID is a stable string identifier (the sprite name resolved once by
// style parsing) rather than the original mbgl implementation's pointer
// comparison — this resolves the "icon identity" Open Question noted in
// spec §9 / SPEC_FULL.md §D.2.
package icon

import "image"

// AtlasID identifies one sprite atlas by name.
type AtlasID string

// Dependencies is the set of sprite atlases a layout run requires
// (spec §3 "IconDependencies").
type Dependencies map[AtlasID]struct{}

// NewDependencies returns an empty, ready-to-use Dependencies set.
func NewDependencies() Dependencies {
	return make(Dependencies)
}

// Add records that atlas id is required.
func (d Dependencies) Add(id AtlasID) {
	d[id] = struct{}{}
}

// IsEmpty reports whether no atlas is required.
func (d Dependencies) IsEmpty() bool {
	return len(d) == 0
}

// Region is the packed rectangle of one icon image within its atlas.
type Region struct {
	Bounds image.Rectangle
}

// Atlas is one packed sprite atlas: a composited image plus the named
// rectangle of every icon packed into it (spec "Icon atlas" in GLOSSARY).
type Atlas struct {
	ID     AtlasID
	Image  *image.RGBA
	Icons  map[string]Region
}

// Atlases is a mapping from atlas ID to packed atlas, satisfying an
// IconDependencies set when every required atlas ID is present
// (spec §3 "Icons").
type Atlases map[AtlasID]Atlas

// Satisfies reports whether every atlas ID in req has an entry in a
// (spec §4.1 hasIconDependencies).
func (a Atlases) Satisfies(req Dependencies) bool {
	for id := range req {
		if _, ok := a[id]; !ok {
			return false
		}
	}
	return true
}
