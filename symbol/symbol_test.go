package symbol

import (
	"testing"

	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/layer"
)

type fakeGeometryLayer struct {
	features []geom.Feature
}

func (f *fakeGeometryLayer) Len() int                   { return len(f.features) }
func (f *fakeGeometryLayer) Feature(i int) geom.Feature { return f.features[i] }

func labelFont() glyph.FontID { return glyph.FontID{Name: "Open Sans"} }

func extractLabel(f geom.Feature) (Instance, bool) {
	name, ok := f.Properties["name"]
	if !ok {
		return Instance{}, false
	}
	s, _ := name.String()
	glyphs := make([]glyph.ID, len(s))
	for i, r := range []rune(s) {
		glyphs[i] = glyph.ID(r)
	}
	return Instance{FeatureID: f.ID, Anchor: geom.Point{X: int32(f.ID) * 100}, Font: labelFont(), Glyphs: glyphs}, true
}

func TestNewLayoutCollectsGlyphDependencies(t *testing.T) {
	gl := &fakeGeometryLayer{features: []geom.Feature{
		{ID: 1, Properties: map[string]geom.PropertyValue{"name": geom.StringValue("AB")}},
	}}
	group := layer.Group{Leader: layer.Descriptor{ID: "poi-label"}, Members: []layer.Descriptor{{ID: "poi-label"}}}

	glyphDeps := glyph.NewDependencies()
	iconDeps := icon.NewDependencies()

	l := NewLayout(group, gl, extractLabel, glyphDeps, iconDeps)

	if l.State() != Pending {
		t.Fatalf("expected new Layout to start Pending, got %v", l.State())
	}
	if !l.HasSymbolInstances() {
		t.Fatal("expected one instance from the labeled feature")
	}
	if glyphDeps.IsEmpty() {
		t.Fatal("expected glyph dependencies to be collected from the label text")
	}
	if _, ok := glyphDeps[labelFont()]['A']; !ok {
		t.Fatal("expected glyph 'A' to be a dependency")
	}
}

func TestNewLayoutNilGeometryLayerHasNoInstances(t *testing.T) {
	group := layer.Group{Leader: layer.Descriptor{ID: "poi-label"}}
	l := NewLayout(group, nil, extractLabel, glyph.NewDependencies(), icon.NewDependencies())
	if l.HasSymbolInstances() {
		t.Fatal("expected no instances when geometryLayer is nil")
	}
}

func TestPrepareIsIdempotentByState(t *testing.T) {
	gl := &fakeGeometryLayer{features: []geom.Feature{
		{ID: 1, Properties: map[string]geom.PropertyValue{"name": geom.StringValue("A")}},
	}}
	group := layer.Group{Leader: layer.Descriptor{ID: "poi-label"}}
	l := NewLayout(group, gl, extractLabel, glyph.NewDependencies(), icon.NewDependencies())

	first := glyph.Positions{labelFont(): {'A': glyph.Position{Advance: 640}}}
	l.Prepare(first, nil)
	if l.State() != Prepared {
		t.Fatalf("expected Prepared after first Prepare, got %v", l.State())
	}

	// A second Prepare call with different positions must be a no-op.
	second := glyph.Positions{labelFont(): {'A': glyph.Position{Advance: 1280}}}
	l.Prepare(second, nil)
	if l.positions[labelFont()]['A'].Advance != 640 {
		t.Fatal("expected second Prepare call to be ignored (idempotent by state)")
	}
}

func TestPlaceBeforePrepareIsANoOp(t *testing.T) {
	gl := &fakeGeometryLayer{features: []geom.Feature{
		{ID: 1, Properties: map[string]geom.PropertyValue{"name": geom.StringValue("A")}},
	}}
	group := layer.Group{Leader: layer.Descriptor{ID: "poi-label"}}
	l := NewLayout(group, gl, extractLabel, glyph.NewDependencies(), icon.NewDependencies())

	tile := NewCollisionTile(10, 0, 0, false)
	if bucket := l.Place(tile); bucket != nil {
		t.Fatal("expected Place on a Pending (unprepared) layout to return nil")
	}
	if l.State() != Pending {
		t.Fatalf("expected state to remain Pending, got %v", l.State())
	}
}

func TestPlaceRerunsCollisionDetectionOnEveryCall(t *testing.T) {
	gl := &fakeGeometryLayer{features: []geom.Feature{
		{ID: 1, Properties: map[string]geom.PropertyValue{"name": geom.StringValue("A")}},
	}}
	group := layer.Group{Leader: layer.Descriptor{ID: "poi-label"}}
	l := NewLayout(group, gl, extractLabel, glyph.NewDependencies(), icon.NewDependencies())
	l.Prepare(glyph.Positions{labelFont(): {'A': glyph.Position{Advance: 640}}}, nil)

	first := NewCollisionTile(10, 0, 0, false)
	bucket := l.Place(first)
	if bucket == nil || !bucket.HasData() {
		t.Fatal("expected first Place to produce a non-empty bucket")
	}
	if l.State() != Placed {
		t.Fatalf("expected state Placed after Place, got %v", l.State())
	}

	// A later placement for a different view config must re-run collision
	// detection against the new tile, not be skipped because the layout was
	// already Placed once.
	second := NewCollisionTile(10, 0, 0, false)
	again := l.Place(second)
	if again == nil || !again.HasData() {
		t.Fatal("expected a second Place call to re-run placement and produce a bucket again")
	}
}

func TestCollisionTileRejectsOverlappingBoxes(t *testing.T) {
	tile := NewCollisionTile(10, 0, 0, false)

	a := box{minX: 0, minY: 0, maxX: 10, maxY: 10}
	b := box{minX: 5, minY: 5, maxX: 15, maxY: 15} // overlaps a
	c := box{minX: 100, minY: 100, maxX: 110, maxY: 110}

	if !tile.tryPlace(a) {
		t.Fatal("expected first box to be placed")
	}
	if tile.tryPlace(b) {
		t.Fatal("expected overlapping box to be rejected")
	}
	if !tile.tryPlace(c) {
		t.Fatal("expected non-overlapping box to be placed")
	}
	if tile.PlacedCount() != 2 {
		t.Fatalf("expected 2 placed boxes, got %d", tile.PlacedCount())
	}
}

func TestCollisionDebugBypassesCollisionDetection(t *testing.T) {
	tile := NewCollisionTile(10, 0, 0, true)

	a := box{minX: 0, minY: 0, maxX: 10, maxY: 10}
	b := box{minX: 0, minY: 0, maxX: 10, maxY: 10}

	if !tile.tryPlace(a) || !tile.tryPlace(b) {
		t.Fatal("expected collision debug mode to place every box regardless of overlap")
	}
}
