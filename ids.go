package tileworker

// TileID is the immutable overscaled tile coordinate a Worker is paired
// with at construction, and is never replaced for the worker's lifetime
// (spec §3 "Tile identity").
type TileID struct {
	Z, X, Y     int
	OverscaledZ int
}

// CorrelationID tags an inbound mutation and rides along with every
// outbound result produced because of it, so the parent can discard
// results that were superseded before they arrived (spec §4.5).
type CorrelationID uint64
