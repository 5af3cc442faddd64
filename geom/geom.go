// Package geom holds the small, dependency-free types shared by every other
// package in this module: tile-local geometry, decoded features, and the
// Bucket interface that a layout run fills with vertex data.
//
// Keeping these in one leaf package is what lets layer, symbol, and
// internal/featureindex all refer to the same feature shape without
// importing each other.
package geom

// Point is a tile-local coordinate. Units are whatever the decoder produced
// (typically "extent" units, e.g. 0..4096); this package does not interpret
// them beyond computing bounds.
type Point struct {
	X, Y int32
}

// Geometry is one ring or line of a feature, in tile-local coordinates.
// A polygon feature carries one Geometry per ring; a multi-line feature
// carries one per line.
type Geometry []Point

// Bounds returns the axis-aligned bounding box of g. ok is false for an
// empty geometry.
func (g Geometry) Bounds() (minX, minY, maxX, maxY int32, ok bool) {
	if len(g) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = g[0].X, g[0].Y
	maxX, maxY = g[0].X, g[0].Y
	for _, p := range g[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY, true
}

// FeatureType is the geometry class of a decoded feature.
type FeatureType uint8

const (
	FeaturePoint FeatureType = iota
	FeatureLine
	FeaturePolygon
)

// PropertyValue is a closed sum type over the scalar property values a
// decoded feature can carry, mirroring the property coercion the original
// implementation performs before filter evaluation (see
// geojson/util.hpp in original_source).
type PropertyValue struct {
	kind byte // 0 nil, 1 string, 2 float64, 3 bool
	s    string
	f    float64
	b    bool
}

func NilValue() PropertyValue                { return PropertyValue{kind: 0} }
func StringValue(s string) PropertyValue     { return PropertyValue{kind: 1, s: s} }
func NumberValue(f float64) PropertyValue    { return PropertyValue{kind: 2, f: f} }
func BoolValue(b bool) PropertyValue         { return PropertyValue{kind: 3, b: b} }

func (v PropertyValue) IsNil() bool          { return v.kind == 0 }
func (v PropertyValue) String() (string, bool) { return v.s, v.kind == 1 }
func (v PropertyValue) Number() (float64, bool) { return v.f, v.kind == 2 }
func (v PropertyValue) Bool() (bool, bool)   { return v.b, v.kind == 3 }

// Feature is one decoded feature from a tile's source layer.
type Feature struct {
	ID         uint64
	Type       FeatureType
	Properties map[string]PropertyValue
	Geometries []Geometry
}

// Bucket is the opaque renderable a bucket factory builds. A non-symbol
// bucket accumulates features via AddFeature; an empty bucket (HasData
// false) is discarded by the layout engine instead of being emitted.
type Bucket interface {
	AddFeature(f Feature, geometries []Geometry)
	HasData() bool
}
