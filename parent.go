package tileworker

import (
	"github.com/gogpu/tileworker/glyph"
	"github.com/gogpu/tileworker/icon"
)

// Parent is the tile actor a Worker reports outbound messages to (spec
// §2, §6): requests for glyph/icon dependencies, layout and placement
// results, and errors recovered while handling an inbound message.
//
// A Worker calls Parent methods synchronously from inside its own mailbox
// goroutine while processing one message; implementations must not block
// on the Worker they were given (e.g. by calling back into one of its
// Set*/On* methods beyond a non-blocking send) or they will deadlock it.
type Parent interface {
	// GetGlyphs requests rasterized positions for deps. Exactly one
	// OnGlyphsAvailable call is expected in response, asynchronously.
	GetGlyphs(deps glyph.Dependencies)
	// GetIcons requests packed atlases for deps. Exactly one
	// OnIconsAvailable call is expected in response, asynchronously.
	GetIcons(deps icon.Dependencies)
	// OnLayout delivers a completed layout result.
	OnLayout(result LayoutResult)
	// OnPlacement delivers a completed placement result.
	OnPlacement(result PlacementResult)
	// OnError reports a failure recovered while handling one inbound
	// message. The worker does not roll its fields back: the input the
	// failed message carried (new data, layers, placement config or
	// dependencies) stays applied.
	OnError(err error)
}
