package hal

// PanelSim emulates the serial side of an SPI TFT controller: a command
// byte selected by the DC line low, parameter and pixel bytes with DC
// high, everything gated by chip select. It decodes the addressing
// window (CASET/PASET), pixel format (COLMOD) and RAMWR payloads into an
// RGB888 image of the panel, and records the command stream so tests can
// verify the protocol byte for byte.
//
// It is used by the display transport tests and by the host preview
// window; it never appears on real hardware builds.
type PanelSim struct {
	width  int
	height int

	csHigh bool
	dcHigh bool
	rstLow bool

	cmd     byte
	haveCmd bool

	bpp int // payload bytes per pixel, from COLMOD

	x0, x1 int // inclusive addressing window
	y0, y1 int
	cx, cy int

	pix  [4]byte
	pixN int

	img    []byte // RGB888, width*height*3
	hist   []SimCmd
	resets int
}

// SimCmd is one decoded command: its parameter bytes, and for RAMWR the
// number of payload bytes that followed.
type SimCmd struct {
	Cmd        byte
	Params     []byte
	PayloadLen int
}

const (
	simCASET  = 0x2A
	simPASET  = 0x2B
	simRAMWR  = 0x2C
	simCOLMOD = 0x3A
)

func NewPanelSim(width, height int) *PanelSim {
	s := &PanelSim{
		width:  width,
		height: height,
		csHigh: true,
		dcHigh: true,
		bpp:    3, // ILI9488 power-on default is 18-bit
		img:    make([]byte, width*height*3),
	}
	s.resetWindow()
	return s
}

func (s *PanelSim) resetWindow() {
	s.x0, s.y0 = 0, 0
	s.x1, s.y1 = s.width-1, s.height-1
	s.cx, s.cy = 0, 0
}

// Tx implements drivers.SPI. Read-back is not modeled.
func (s *PanelSim) Tx(w, r []byte) error {
	for _, b := range w {
		s.byteIn(b)
	}
	for i := range r {
		r[i] = 0
	}
	return nil
}

// Transfer implements drivers.SPI.
func (s *PanelSim) Transfer(b byte) (byte, error) {
	s.byteIn(b)
	return 0, nil
}

func (s *PanelSim) byteIn(b byte) {
	if s.csHigh {
		return
	}
	if !s.dcHigh {
		s.cmd = b
		s.haveCmd = true
		s.pixN = 0
		s.hist = append(s.hist, SimCmd{Cmd: b})
		if b == simRAMWR {
			s.cx, s.cy = s.x0, s.y0
		}
		return
	}
	if !s.haveCmd {
		return
	}
	if s.cmd == simRAMWR {
		s.hist[len(s.hist)-1].PayloadLen++
		s.pix[s.pixN] = b
		s.pixN++
		if s.pixN >= s.bpp {
			s.pixN = 0
			s.plot()
		}
		return
	}
	last := &s.hist[len(s.hist)-1]
	last.Params = append(last.Params, b)
	switch s.cmd {
	case simCASET:
		if len(last.Params) == 4 {
			s.x0 = int(last.Params[0])<<8 | int(last.Params[1])
			s.x1 = int(last.Params[2])<<8 | int(last.Params[3])
		}
	case simPASET:
		if len(last.Params) == 4 {
			s.y0 = int(last.Params[0])<<8 | int(last.Params[1])
			s.y1 = int(last.Params[2])<<8 | int(last.Params[3])
		}
	case simCOLMOD:
		switch last.Params[0] {
		case 0x55:
			s.bpp = 2
		case 0x66:
			s.bpp = 3
		}
	}
}

func (s *PanelSim) plot() {
	var r, g, b uint8
	switch s.bpp {
	case 2:
		// RGB565, big-endian on the wire.
		r, g, b = RGB888From565(uint16(s.pix[0])<<8 | uint16(s.pix[1]))
	case 3:
		// RGB666, one channel per byte in the top six bits.
		r = uint8(uint16(s.pix[0]>>2) * 255 / 63)
		g = uint8(uint16(s.pix[1]>>2) * 255 / 63)
		b = uint8(uint16(s.pix[2]>>2) * 255 / 63)
	}
	if s.cx >= 0 && s.cx < s.width && s.cy >= 0 && s.cy < s.height {
		off := (s.cy*s.width + s.cx) * 3
		s.img[off] = r
		s.img[off+1] = g
		s.img[off+2] = b
	}
	s.cx++
	if s.cx > s.x1 {
		s.cx = s.x0
		s.cy++
		if s.cy > s.y1 {
			s.cy = s.y0
		}
	}
}

// CSPin, DCPin and ResetPin return the panel's control line endpoints.
func (s *PanelSim) CSPin() Pin {
	return simPin{high: func() { s.csHigh = true }, low: func() { s.csHigh = false }}
}

func (s *PanelSim) DCPin() Pin {
	return simPin{high: func() { s.dcHigh = true }, low: func() { s.dcHigh = false }}
}

func (s *PanelSim) ResetPin() Pin {
	return simPin{
		high: func() {
			if s.rstLow {
				s.rstLow = false
				s.resets++
				s.haveCmd = false
				s.bpp = 3
				s.resetWindow()
			}
		},
		low: func() { s.rstLow = true },
	}
}

// CSHigh reports whether chip select is currently deasserted.
func (s *PanelSim) CSHigh() bool { return s.csHigh }

// Resets reports how many hardware reset pulses the panel has seen.
func (s *PanelSim) Resets() int { return s.resets }

// History returns the decoded command stream since the last ResetHistory.
func (s *PanelSim) History() []SimCmd { return s.hist }

func (s *PanelSim) ResetHistory() { s.hist = nil }

// RGBAt returns the decoded panel contents at (x, y).
func (s *PanelSim) RGBAt(x, y int) (r, g, b uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, 0, 0
	}
	off := (y*s.width + x) * 3
	return s.img[off], s.img[off+1], s.img[off+2]
}

// Image returns the panel contents as a flat RGB888 slice.
func (s *PanelSim) Image() []byte { return s.img }

// Size returns the simulated panel dimensions.
func (s *PanelSim) Size() (w, h int) { return s.width, s.height }

type simPin struct {
	high func()
	low  func()
}

func (p simPin) High() { p.high() }
func (p simPin) Low()  { p.low() }
