package tileworker

import (
	"testing"

	"github.com/gogpu/tileworker/layer"
)

func TestTileDataCloneNoDataIsNil(t *testing.T) {
	var d TileData
	if d.State() != NoData {
		t.Fatalf("expected zero-value TileData to be NoData, got %v", d.State())
	}
	if clone := d.clone(); clone != nil {
		t.Fatal("expected NoData to clone to nil")
	}
}

func TestTileDataCloneEmptyDataIsNonNilButEmpty(t *testing.T) {
	d := EmptyTileData()
	clone := d.clone()
	if clone == nil {
		t.Fatal("expected EmptyData to clone to a non-nil, empty TileData")
	}
	if clone.State() != EmptyData {
		t.Fatalf("expected clone to carry state EmptyData, got %v", clone.State())
	}
	if _, ok := clone.SourceLayer("anything"); ok {
		t.Fatal("expected an EmptyData clone to have no source layers")
	}
}

func TestTileDataClonePresentCopiesLayers(t *testing.T) {
	d := NewTileData(map[string]layer.GeometryLayer{
		"roads": &fakeGeometryLayer{features: nil},
	})
	clone := d.clone()
	if clone == nil {
		t.Fatal("expected Present data to clone to a non-nil TileData")
	}
	if _, ok := clone.SourceLayer("roads"); !ok {
		t.Fatal("expected clone to carry over the roads source layer")
	}
}
