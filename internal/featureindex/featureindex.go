// Package featureindex implements the per-tile spatial feature index
// described in spec §3 ("FeatureIndex") and §4.2 step 3: an index built
// incrementally as the layout engine walks each group's features, later
// queried by the renderer for hit-testing and "query rendered features".
//
// The grid is a generalization of internal/parallel/tile_grid.go's flat,
// row-major tile grid from the teacher codebase: instead of fixed 64x64
// pixel raster tiles covering a canvas, cells here cover a configurable
// span of tile-local geometry units (extent space) covering one vector
// tile. The row-major flat-slice layout and index arithmetic are the same
// shape; what changed is what lives in each cell (feature references
// instead of pixels).
package featureindex

import "github.com/gogpu/tileworker/geom"

// DefaultCellSize is the edge length of one grid cell in tile-local units.
// A typical vector tile extent is 4096 units per side; 256 gives a 16x16
// grid, a reasonable default bucket count for hit-testing without per-tile
// tuning.
const DefaultCellSize = 256

// Entry is one indexed feature reference: the source layer it came from,
// the leader layer ID of the bucket group that consumed it, and the
// feature's position within that source layer's feature sequence.
type Entry struct {
	SourceLayerID string
	LeaderLayerID string
	FeatureIndex  int
	Geometries    []geom.Geometry
}

// Index is a per-tile spatial index of features, plus the leader-to-members
// layer ID mapping the layout engine populates while grouping (spec §4.2
// step 3: "Register leader.id -> [all IDs in group]").
//
// Index is not safe for concurrent use; it is owned exclusively by the
// single-threaded worker that builds it, matching every other in-flight
// layout artifact (spec §5).
type Index struct {
	cellSize int
	cells    map[int64][]*Entry
	groups   map[string][]string // leader layer ID -> member layer IDs
}

// New creates an empty feature index with the given grid cell size.
// A cellSize <= 0 uses DefaultCellSize.
func New(cellSize int) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{
		cellSize: cellSize,
		cells:    make(map[int64][]*Entry),
		groups:   make(map[string][]string),
	}
}

// RegisterGroup records that leaderID's bucket is shared by memberIDs
// (spec §4.2 step 3). Called once per group, before or after inserting its
// features.
func (idx *Index) RegisterGroup(leaderID string, memberIDs []string) {
	cp := make([]string, len(memberIDs))
	copy(cp, memberIDs)
	idx.groups[leaderID] = cp
}

// LayerIDsForLeader returns the member layer IDs sharing leaderID's bucket,
// or nil if leaderID was never registered.
func (idx *Index) LayerIDsForLeader(leaderID string) []string {
	return idx.groups[leaderID]
}

// Insert adds one feature's geometries to the index under sourceLayerID,
// attributing it to leaderLayerID's bucket group. featureIdx is the
// feature's position within its source layer, used for round-tripping a
// hit back to its originating feature (spec §8 "Round-trip").
func (idx *Index) Insert(geometries []geom.Geometry, featureIdx int, sourceLayerID, leaderLayerID string) {
	e := &Entry{
		SourceLayerID: sourceLayerID,
		LeaderLayerID: leaderLayerID,
		FeatureIndex:  featureIdx,
		Geometries:    geometries,
	}
	for _, g := range geometries {
		minX, minY, maxX, maxY, ok := g.Bounds()
		if !ok {
			continue
		}
		idx.forEachCell(minX, minY, maxX, maxY, func(key int64) {
			idx.cells[key] = append(idx.cells[key], e)
		})
	}
}

// Query returns every indexed entry whose geometry bounds intersect the
// given axis-aligned tile-local rectangle, deduplicated across cells a
// single feature spans. Entries come out cell by cell in row-major order
// and in insertion order within a cell; across cells the result is not in
// overall insertion order.
func (idx *Index) Query(minX, minY, maxX, maxY int32) []*Entry {
	seen := make(map[*Entry]bool)
	var out []*Entry
	idx.forEachCell(minX, minY, maxX, maxY, func(key int64) {
		for _, e := range idx.cells[key] {
			if seen[e] {
				continue
			}
			if !intersects(e, minX, minY, maxX, maxY) {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	})
	return out
}

// Len returns the total number of distinct feature entries inserted
// (not the number of cell memberships).
func (idx *Index) Len() int {
	seen := make(map[*Entry]bool)
	for _, entries := range idx.cells {
		for _, e := range entries {
			seen[e] = true
		}
	}
	return len(seen)
}

func intersects(e *Entry, minX, minY, maxX, maxY int32) bool {
	for _, g := range e.Geometries {
		gMinX, gMinY, gMaxX, gMaxY, ok := g.Bounds()
		if !ok {
			continue
		}
		if gMaxX < minX || gMinX > maxX || gMaxY < minY || gMinY > maxY {
			continue
		}
		return true
	}
	return false
}

func (idx *Index) forEachCell(minX, minY, maxX, maxY int32, fn func(key int64)) {
	cs := int32(idx.cellSize)
	x0, y0 := floorDiv(minX, cs), floorDiv(minY, cs)
	x1, y1 := floorDiv(maxX, cs), floorDiv(maxY, cs)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fn(cellKey(x, y))
		}
	}
}

// cellKey packs a (x,y) cell coordinate into a single map key; cell
// coordinates for one tile comfortably fit in 32 bits each.
func cellKey(x, y int32) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

func floorDiv(v, d int32) int32 {
	q := v / d
	if v%d != 0 && (v < 0) != (d < 0) {
		q--
	}
	return q
}
