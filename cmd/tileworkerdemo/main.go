// Command tileworkerdemo drives a single tileworker.Worker through a
// small synthetic burst of inbound messages and logs every outbound
// message it produces.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gogpu/tileworker"
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/internal/obsolete"
	"github.com/gogpu/tileworker/layer"
	"github.com/gogpu/tileworker/symbol"
)

func main() {
	var zoom = flag.Float64("zoom", 12, "placement config zoom")
	flag.Parse()

	obsoleteFlag := obsolete.New()
	p := &loggingParent{done: make(chan struct{})}
	w := tileworker.New(tileworker.TileID{Z: 12, X: 2179, Y: 1420, OverscaledZ: 12}, p, obsoleteFlag)
	defer w.Close()

	data := tileworker.NewTileData(map[string]layer.GeometryLayer{
		"buildings": &demoLayer{features: []geom.Feature{
			{ID: 1, Type: geom.FeaturePolygon, Geometries: []geom.Geometry{{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}}},
		}},
		"poi": &demoLayer{features: []geom.Feature{
			{ID: 2, Type: geom.FeaturePoint, Properties: map[string]geom.PropertyValue{"name": geom.StringValue("Cafe")}, Geometries: []geom.Geometry{{{X: 50, Y: 50}}}},
		}},
	})

	layers := []layer.Descriptor{
		{
			ID:          "buildings-fill",
			SourceLayer: "buildings",
			LayoutKey:   "fill",
			BucketFactory: func(layer.BucketParameters, layer.Group) geom.Bucket {
				return &demoBucket{}
			},
		},
		{
			ID:          "poi-label",
			SourceLayer: "poi",
			Kind:        layer.KindSymbol,
			SymbolLayoutFactory: func(params layer.BucketParameters, group layer.Group, gl layer.GeometryLayer, glyphDeps glyph.Dependencies, iconDeps icon.Dependencies) layer.SymbolLayout {
				font := glyph.FontID{Name: "Open Sans"}
				glyphDeps.Add(font, 65)
				return &demoSymbolLayout{}
			},
		},
	}

	w.SetData(data, 1)
	w.SetLayers(layers, 2)
	w.SetPlacementConfig(tileworker.PlacementConfig{Zoom: *zoom}, 3)

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
		log.Println("timed out waiting for placement")
	}
}

type demoLayer struct{ features []geom.Feature }

func (d *demoLayer) Len() int                   { return len(d.features) }
func (d *demoLayer) Feature(i int) geom.Feature { return d.features[i] }

type demoBucket struct{ n int }

func (b *demoBucket) AddFeature(f geom.Feature, g []geom.Geometry) { b.n++ }
func (b *demoBucket) HasData() bool                                { return b.n > 0 }

// demoSymbolLayout stands in for a real symbol.Layout so this demo doesn't
// need to shape real text; it satisfies the worker's internal placeable
// symbol layout interface structurally.
type demoSymbolLayout struct{ state symbol.State }

func (s *demoSymbolLayout) Prepare(glyph.Positions, icon.Atlases) { s.state = symbol.Prepared }
func (s *demoSymbolLayout) HasSymbolInstances() bool              { return true }
func (s *demoSymbolLayout) PaintProperties() map[string]any       { return map[string]any{"poi-label": nil} }
func (s *demoSymbolLayout) State() symbol.State                   { return s.state }
func (s *demoSymbolLayout) Place(tile *symbol.CollisionTile) geom.Bucket {
	s.state = symbol.Placed
	return &demoBucket{n: 1}
}

type loggingParent struct{ done chan struct{} }

func (p *loggingParent) GetGlyphs(deps glyph.Dependencies) {
	log.Printf("getGlyphs: %d fonts requested", len(deps))
}

func (p *loggingParent) GetIcons(deps icon.Dependencies) {
	log.Printf("getIcons: %d atlases requested", len(deps))
}

func (p *loggingParent) OnLayout(result tileworker.LayoutResult) {
	log.Printf("onLayout correlation=%d buckets=%d", result.CorrelationID, len(result.Buckets))
}

func (p *loggingParent) OnPlacement(result tileworker.PlacementResult) {
	log.Printf("onPlacement correlation=%d buckets=%d", result.CorrelationID, len(result.Buckets))
	close(p.done)
}

func (p *loggingParent) OnError(err error) {
	log.Printf("onError: %v", err)
	fmt.Println(err)
}
