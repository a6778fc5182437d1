package render

import (
	"image/color"

	"prism/hal"
)

// SkyConfig selects the background gradient painted behind geometry.
type SkyConfig struct {
	Enabled bool
	Top     color.RGBA
	Horizon color.RGBA
}

// skyCache holds one packed color per scanline, odd rows slightly
// darkened to fake a denser gradient than RGB565 can encode directly.
// Invalidated whenever the gradient preset or enable flag changes and
// rebuilt lazily on the next fill.
type skyCache struct {
	rows  []uint16
	valid bool
}

func (c *skyCache) invalidate() { c.valid = false }

func (c *skyCache) build(cfg SkyConfig, height int, uncached bool) {
	if uncached {
		return
	}
	if c.rows == nil || len(c.rows) != height {
		c.rows = make([]uint16, height)
	}
	for y := 0; y < height; y++ {
		c.rows[y] = skyRowColor(cfg, y, height)
	}
	c.valid = true
}

// skyRowColor computes the gradient color for row y directly. It is the
// fallback path when the cache is disabled, and the builder for the
// cached path.
func skyRowColor(cfg SkyConfig, y, height int) uint16 {
	t := 0
	if height > 1 {
		t = y * 255 / (height - 1)
	}
	r := lerp8(cfg.Top.R, cfg.Horizon.R, t)
	g := lerp8(cfg.Top.G, cfg.Horizon.G, t)
	b := lerp8(cfg.Top.B, cfg.Horizon.B, t)
	px := hal.RGB565(r, g, b)
	if y&1 == 1 {
		px = darken565(px)
	}
	return px
}

func lerp8(a, b uint8, t int) uint8 {
	return uint8(int(a) + (int(b)-int(a))*t/255)
}

// darken565 steps each channel down by one quantization level.
func darken565(c uint16) uint16 {
	r := c >> 11
	g := (c >> 5) & 0x3F
	b := c & 0x1F
	if r > 0 {
		r--
	}
	if g > 1 {
		g -= 2 // green carries six bits, two steps match the others visually
	}
	if b > 0 {
		b--
	}
	return r<<11 | g<<5 | b
}
