package tileworker

import (
	"github.com/gogpu/tileworker/geom"
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
	"github.com/gogpu/tileworker/internal/featureindex"
	"github.com/gogpu/tileworker/layer"
	"github.com/gogpu/tileworker/symbol"
)

// inboundMessage is any message the worker's mailbox accepts: the five
// parent-originated messages plus the self-posted coalesced marker
// (spec §2, §6).
type inboundMessage interface {
	isInboundMessage()
}

type setDataMsg struct {
	data          TileData
	correlationID CorrelationID
}

type setLayersMsg struct {
	layers        []layer.Descriptor
	correlationID CorrelationID
}

type setPlacementConfigMsg struct {
	config        PlacementConfig
	correlationID CorrelationID
}

type onGlyphsAvailableMsg struct {
	positions glyph.Positions
}

type onIconsAvailableMsg struct {
	atlases icon.Atlases
}

// coalescedMsg is the self-posted burst-end marker (spec §4.4, GLOSSARY
// "Coalesced"): posted by the worker to itself via maybeSchedule whenever
// work becomes pending and no marker is already queued (including after a
// layout, for the placement that follows it), so every message queued
// ahead of it has been applied before the layout or placement runs.
type coalescedMsg struct{}

func (setDataMsg) isInboundMessage()            {}
func (setLayersMsg) isInboundMessage()          {}
func (setPlacementConfigMsg) isInboundMessage() {}
func (onGlyphsAvailableMsg) isInboundMessage()  {}
func (onIconsAvailableMsg) isInboundMessage()   {}
func (coalescedMsg) isInboundMessage()          {}

// LayoutResult is the onLayout message payload (spec §6).
type LayoutResult struct {
	TileID        TileID
	Buckets       map[string]geom.Bucket
	FeatureIndex  *featureindex.Index
	DataClone     *TileData
	CorrelationID CorrelationID
}

// PlacementResult is the onPlacement message payload (spec §6).
type PlacementResult struct {
	TileID        TileID
	Buckets       map[string]geom.Bucket
	CollisionTile *symbol.CollisionTile
	CorrelationID CorrelationID
}
