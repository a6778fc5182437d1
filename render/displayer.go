package render

import (
	"image/color"

	"prism/hal"
)

// Displayer adapts the compositor's frame buffer to the
// drivers.Displayer interface so tinyfont can draw into it. Display is
// a no-op: the transport pushes pixels, not the adapter.
type Displayer struct {
	c *Compositor
}

func (c *Compositor) Displayer() *Displayer {
	return &Displayer{c: c}
}

func (d *Displayer) Size() (x, y int16) {
	if d.c == nil || d.c.buf == nil {
		return 0, 0
	}
	vp := d.c.cfg.Viewport
	return int16(vp.Width), int16(vp.Height)
}

func (d *Displayer) SetPixel(x, y int16, col color.RGBA) {
	if d.c == nil || d.c.buf == nil {
		return
	}
	vp := d.c.cfg.Viewport
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= vp.Width || iy < 0 || iy >= vp.Height {
		return
	}
	d.c.buf[iy*vp.Width+ix] = hal.RGB565(col.R, col.G, col.B)
}

func (d *Displayer) Display() error {
	return nil
}
