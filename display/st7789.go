package display

import "time"

// st7789 drives the ST7789 controller: native RGB565 panel, so pushing
// is just a byte-order swap streamed synchronously chunk by chunk. The
// simple variant of the transport; small panels on fast links don't
// need the overlap.
type st7789 struct {
	panel
	pipe pipeline
}

func (d *st7789) Configure() error {
	d.pipe.q = d.q

	if err := d.reset(); err != nil {
		return err
	}

	if err := d.cmd(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)

	steps := []struct {
		cmd  byte
		data []byte
	}{
		{cmdCOLMOD, []byte{0x55}}, // 16bpp
		{cmdMADCTL, []byte{0x00}},
		{cmdINVON, nil},
		{cmdNORON, nil},
	}
	for _, s := range steps {
		if err := d.cmd(s.cmd, s.data...); err != nil {
			return err
		}
	}
	return d.cmd(cmdDISPON)
}

func (d *st7789) PushFrame(buf []uint16) error {
	if len(buf) < d.width*d.height {
		return ErrShortBuffer
	}
	return d.blit(0, 0, d.width, d.height, buf)
}

func (d *st7789) PushRect(x, y, w, h int, buf []uint16) error {
	cx, cy, cw, ch, ok := d.clip(x, y, w, h)
	if !ok {
		return nil
	}
	if len(buf) < d.width*d.height {
		return ErrShortBuffer
	}
	return d.blit(cx, cy, cw, ch, buf)
}

func (d *st7789) blit(x, y, w, h int, buf []uint16) error {
	d.pipe.ensure(chunkBytes)
	maxPix := (d.pipe.capacity() / 2) &^ 1

	if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	d.cs.Low()
	d.dc.High()

	send := func(src []uint16) error {
		err := d.pipe.submit(func(dst []byte) int {
			return convert565BE(dst, src)
		})
		if err == nil {
			err = d.pipe.drain()
		}
		return err
	}

	if w == d.width {
		// Contiguous in the source buffer: chunk freely.
		off := y * d.width
		end := off + h*d.width
		for off < end {
			n := end - off
			if n > maxPix {
				n = maxPix
			}
			if err := send(buf[off : off+n]); err != nil {
				d.cs.High()
				return err
			}
			off += n
		}
	} else {
		for r := 0; r < h; r++ {
			base := (y+r)*d.width + x
			if err := send(buf[base : base+w]); err != nil {
				d.cs.High()
				return err
			}
		}
	}

	d.cs.High()
	return nil
}
