package display

import "time"

// ili9488 drives the ILI9488 controller. The SPI interface of this chip
// only accepts 18-bit pixels, so every push re-quantizes the RGB565
// frame buffer to RGB666 on the way out. Full-width transfers overlap
// that conversion with the in-flight chunk through the two-slot
// pipeline; sub-region transfers go row by row, synchronously.
type ili9488 struct {
	panel
	pipe pipeline
}

func (d *ili9488) Configure() error {
	d.pipe.q = d.q

	if err := d.reset(); err != nil {
		return err
	}

	steps := []struct {
		cmd  byte
		data []byte
	}{
		// Power control.
		{0xC0, []byte{0x17, 0x15}}, // PWCTRL1
		{0xC1, []byte{0x41}},       // PWCTRL2

		// VCOM control.
		{0xC5, []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL

		// Pixel format: 18bpp, the only depth the SPI interface takes.
		{cmdCOLMOD, []byte{0x66}},

		// Frame rate / display function.
		{0xB1, []byte{0xA0, 0x11}},       // FRMCTRL1
		{0xB6, []byte{0x02, 0x22, 0x27}}, // DISCTRL

		// Inversion mode. Many panels look correct with inversion enabled.
		{cmdINVON, nil},

		// Memory access control: mirror for the carrier wiring + BGR panel order.
		{cmdMADCTL, []byte{0x40 | 0x04 | 0x08}}, // MX|MH|BGR
	}
	for _, s := range steps {
		if err := d.cmd(s.cmd, s.data...); err != nil {
			return err
		}
	}

	if err := d.cmd(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)
	return d.cmd(cmdDISPON)
}

func (d *ili9488) PushFrame(buf []uint16) error {
	if len(buf) < d.width*d.height {
		return ErrShortBuffer
	}
	return d.pushFullWidth(0, d.height, buf)
}

func (d *ili9488) PushRect(x, y, w, h int, buf []uint16) error {
	cx, cy, cw, ch, ok := d.clip(x, y, w, h)
	if !ok {
		return nil
	}
	if len(buf) < d.width*d.height {
		return ErrShortBuffer
	}
	if cw == d.width {
		return d.pushFullWidth(cy, ch, buf)
	}
	return d.pushRows(cx, cy, cw, ch, buf)
}

// pushFullWidth streams rows [y0, y0+rows) through the queued pipeline.
// Pixel runs need no per-row re-addressing because the window spans the
// full panel width.
func (d *ili9488) pushFullWidth(y0, rows int, buf []uint16) error {
	d.pipe.ensure(chunkBytes)
	maxPix := (d.pipe.capacity() / 3) &^ 1

	if err := d.setWindow(0, y0, d.width-1, y0+rows-1); err != nil {
		return err
	}
	d.cs.Low()
	d.dc.High()

	off := y0 * d.width
	end := off + rows*d.width
	for off < end {
		n := end - off
		if n > maxPix {
			n = maxPix
		}
		src := buf[off : off+n]
		err := d.pipe.submit(func(dst []byte) int {
			return convert565To666(dst, src)
		})
		if err != nil {
			d.cs.High()
			return err
		}
		off += n
	}

	err := d.pipe.drain()
	d.cs.High()
	return err
}

// pushRows is the synchronous sub-region path: convert one row, send
// it, block until done. Correctness over throughput for the rare small
// updates.
func (d *ili9488) pushRows(x, y, w, h int, buf []uint16) error {
	d.pipe.ensure(w * 3)

	if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	d.cs.Low()
	d.dc.High()

	for r := 0; r < h; r++ {
		base := (y+r)*d.width + x
		src := buf[base : base+w]
		err := d.pipe.submit(func(dst []byte) int {
			return convert565To666(dst, src)
		})
		if err == nil {
			err = d.pipe.drain()
		}
		if err != nil {
			d.cs.High()
			return err
		}
	}

	d.cs.High()
	return nil
}
