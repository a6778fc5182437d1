package render

import "errors"

// Depth buffer convention shared with the rasterizer. The top bit of
// each cell marks the pixel as shadowed; it is unrelated to emptiness
// and must be masked off before comparing to the empty sentinel.
const (
	DepthEmpty     uint16 = 0x7FFF
	DepthShadowBit uint16 = 0x8000
)

var (
	ErrAlreadyInitialized = errors.New("render: frame buffer already allocated")
	ErrNotInitialized     = errors.New("render: frame buffer not allocated")
	ErrBadViewport        = errors.New("render: viewport dimensions must be positive")
	ErrDepthMismatch      = errors.New("render: depth buffer does not match viewport")
)

// CompositorConfig is the static compositor setup.
//
// UncachedSky drops the per-scanline gradient table and computes each
// row color on demand, trading fill speed for memory on tight targets.
type CompositorConfig struct {
	Viewport    Viewport
	Sky         SkyConfig
	UncachedSky bool
}

// Compositor owns the frame buffer: a flat array of RGB565 pixels,
// length padded to an even pixel count so transfers stay word aligned.
// All mutation happens on the single render thread between frame
// boundaries.
type Compositor struct {
	cfg CompositorConfig
	buf []uint16
	sky skyCache
}

// Init allocates the frame buffer. Calling Init on a compositor that
// already holds a buffer is an error, never a silent reallocation.
func (c *Compositor) Init(cfg CompositorConfig) error {
	if c.buf != nil {
		return ErrAlreadyInitialized
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return ErrBadViewport
	}
	n := cfg.Viewport.Area()
	c.cfg = cfg
	c.buf = make([]uint16, (n+1)&^1)
	c.sky.invalidate()
	return nil
}

// Buffer returns the owned pixel buffer, nil before Init. The first
// Width*Height entries are the viewport pixels in row-major order.
func (c *Compositor) Buffer() []uint16 { return c.buf }

func (c *Compositor) Viewport() Viewport { return c.cfg.Viewport }

func (c *Compositor) Config() CompositorConfig { return c.cfg }

// SetSky swaps the gradient preset and invalidates the scanline cache.
func (c *Compositor) SetSky(sky SkyConfig) {
	c.cfg.Sky = sky
	c.sky.invalidate()
}

// Clear fills the whole buffer with one packed color.
func (c *Compositor) Clear(px uint16) {
	buf := c.buf
	n := len(buf) &^ 7
	for i := 0; i < n; i += 8 {
		buf[i+0] = px
		buf[i+1] = px
		buf[i+2] = px
		buf[i+3] = px
		buf[i+4] = px
		buf[i+5] = px
		buf[i+6] = px
		buf[i+7] = px
	}
	for i := n; i < len(buf); i++ {
		buf[i] = px
	}
}

// ClearRect fills a clipped rectangle with one packed color.
func (c *Compositor) ClearRect(r Rect, px uint16) {
	r = r.Clip(c.cfg.Viewport)
	if r.Empty() || c.buf == nil {
		return
	}
	w := c.cfg.Viewport.Width
	for y := r.Y0; y < r.Y1; y++ {
		row := c.buf[y*w+r.X0 : y*w+r.X1]
		for i := range row {
			row[i] = px
		}
	}
}

// FillSky stripe-fills every scanline with its gradient color.
func (c *Compositor) FillSky() error {
	if c.buf == nil {
		return ErrNotInitialized
	}
	w := c.cfg.Viewport.Width
	h := c.cfg.Viewport.Height
	for y := 0; y < h; y++ {
		px := c.skyRow(y)
		row := c.buf[y*w : (y+1)*w]
		for i := range row {
			row[i] = px
		}
	}
	return nil
}

// FillEmptySky writes the sky color into every pixel whose depth cell,
// with the shadow bit masked off, still holds the empty sentinel. This
// composites the sky behind already-rasterized geometry without a
// second color buffer. Pixels are walked in batches of 16, per-pixel
// depth semantics preserved exactly.
func (c *Compositor) FillEmptySky(depth []uint16) error {
	if c.buf == nil {
		return ErrNotInitialized
	}
	w := c.cfg.Viewport.Width
	h := c.cfg.Viewport.Height
	if len(depth) != w*h {
		return ErrDepthMismatch
	}
	for y := 0; y < h; y++ {
		sky := c.skyRow(y)
		row := c.buf[y*w : (y+1)*w]
		drow := depth[y*w : (y+1)*w]
		x := 0
		for ; x+16 <= w; x += 16 {
			d := drow[x : x+16 : x+16]
			p := row[x : x+16 : x+16]
			for k := 0; k < 16; k++ {
				if d[k]&^DepthShadowBit == DepthEmpty {
					p[k] = sky
				}
			}
		}
		for ; x < w; x++ {
			if drow[x]&^DepthShadowBit == DepthEmpty {
				row[x] = sky
			}
		}
	}
	return nil
}

func (c *Compositor) skyRow(y int) uint16 {
	if c.cfg.UncachedSky {
		return skyRowColor(c.cfg.Sky, y, c.cfg.Viewport.Height)
	}
	if !c.sky.valid {
		c.sky.build(c.cfg.Sky, c.cfg.Viewport.Height, false)
	}
	return c.sky.rows[y]
}

// OutlineRect draws a one-pixel border inset by one pixel inside r.
// Purely a visual diagnostic for emitted redraw rectangles.
func (c *Compositor) OutlineRect(r Rect, px uint16) {
	r = Rect{r.X0 + 1, r.Y0 + 1, r.X1 - 1, r.Y1 - 1}.Clip(c.cfg.Viewport)
	if r.Empty() || c.buf == nil {
		return
	}
	w := c.cfg.Viewport.Width
	top := c.buf[r.Y0*w+r.X0 : r.Y0*w+r.X1]
	bot := c.buf[(r.Y1-1)*w+r.X0 : (r.Y1-1)*w+r.X1]
	for i := range top {
		top[i] = px
		bot[i] = px
	}
	for y := r.Y0; y < r.Y1; y++ {
		c.buf[y*w+r.X0] = px
		c.buf[y*w+r.X1-1] = px
	}
}
