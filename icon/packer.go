package icon

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// PackerConfig configures a Packer, mirroring the size/padding knobs the
// teacher's text/msdf.AtlasConfig uses for its glyph grid manager, applied
// here to sprite rectangles instead of fixed glyph cells.
type PackerConfig struct {
	// Size is the atlas texture width = height. Must be positive.
	Size int
	// Padding is the empty margin kept between packed icons to prevent
	// bleeding when the atlas is sampled with filtering.
	Padding int
}

// DefaultPackerConfig returns a 1024x1024 atlas with 1px padding.
func DefaultPackerConfig() PackerConfig {
	return PackerConfig{Size: 1024, Padding: 1}
}

// ErrAtlasFull is returned by Packer.Add when no more icons fit.
var ErrAtlasFull = fmt.Errorf("icon: atlas is full")

// Packer packs icon images into a single atlas using a shelf algorithm:
// icons are placed left-to-right along the current shelf, a new shelf
// starts when the current one runs out of width, and Add fails once no
// shelf has room.
type Packer struct {
	cfg      PackerConfig
	atlas    Atlas
	shelfY   int
	shelfH   int
	cursorX  int
}

// NewPacker creates a packer backing a freshly allocated atlas named id.
func NewPacker(id AtlasID, cfg PackerConfig) *Packer {
	if cfg.Size <= 0 {
		cfg = DefaultPackerConfig()
	}
	return &Packer{
		cfg: cfg,
		atlas: Atlas{
			ID:    id,
			Image: image.NewRGBA(image.Rect(0, 0, cfg.Size, cfg.Size)),
			Icons: make(map[string]Region),
		},
	}
}

// Add composites src into the atlas under name, returning the packed
// Region. Returns ErrAtlasFull if src does not fit in any remaining shelf.
func (p *Packer) Add(name string, src image.Image) (Region, error) {
	w := src.Bounds().Dx() + p.cfg.Padding
	h := src.Bounds().Dy() + p.cfg.Padding

	if p.cursorX+w > p.cfg.Size {
		// Start a new shelf below the tallest icon placed on this one.
		p.shelfY += p.shelfH
		p.shelfH = 0
		p.cursorX = 0
	}
	if w > p.cfg.Size || p.shelfY+h > p.cfg.Size {
		return Region{}, ErrAtlasFull
	}

	dst := image.Rect(p.cursorX, p.shelfY, p.cursorX+src.Bounds().Dx(), p.shelfY+src.Bounds().Dy())
	draw.Draw(p.atlas.Image, dst, src, src.Bounds().Min, draw.Src)

	p.cursorX += w
	if h > p.shelfH {
		p.shelfH = h
	}

	region := Region{Bounds: dst}
	p.atlas.Icons[name] = region
	return region, nil
}

// Atlas returns the atlas built so far. Safe to call repeatedly; later
// calls to Add continue mutating the same underlying image.
func (p *Packer) Atlas() Atlas {
	return p.atlas
}
