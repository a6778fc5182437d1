// Package display owns the physical link to the panel: addressing
// window setup, pixel-format conversion and the queued transfer
// pipeline that overlaps CPU conversion with in-flight DMA.
package display

import (
	"errors"

	"prism/hal"
)

// Chip selects the panel controller variant at configuration time.
type Chip uint8

const (
	// ChipILI9488 is the segmented, format-converting driver: the
	// panel wants 18-bit RGB666, pushed through the two-slot queue.
	ChipILI9488 Chip = iota + 1
	// ChipST7789 is the simple push-image driver: native RGB565
	// big-endian, pushed synchronously.
	ChipST7789
)

var (
	ErrUnknownChip = errors.New("display: unknown panel chip")
	ErrBadConfig   = errors.New("display: incomplete configuration")
	ErrShortBuffer = errors.New("display: pixel buffer shorter than panel")
)

// Driver pushes frame-buffer pixels to a panel. Off-panel or zero-area
// requests are silent no-ops. buf holds RGB565 pixels in row-major
// order with a stride of the panel width.
type Driver interface {
	Size() (w, h int)
	Configure() error
	PushFrame(buf []uint16) error
	PushRect(x, y, w, h int, buf []uint16) error
}

// Config describes one panel hookup. The SPI bus itself is configured
// by bring-up code (hal.NewBoardLink on hardware); ClockHz is carried
// for logging only.
type Config struct {
	Chip    Chip
	Width   int
	Height  int
	Link    hal.Link
	ClockHz uint32
}

// New selects and constructs the driver for cfg.Chip. The returned
// driver still needs Configure before the first push.
func New(cfg Config) (Driver, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrBadConfig
	}
	l := cfg.Link
	if l.Bus == nil || l.CS == nil || l.DC == nil {
		return nil, ErrBadConfig
	}
	if l.Queue == nil {
		l.Queue = hal.NewSyncQueue(l.Bus)
	}
	p := panel{
		bus:    l.Bus,
		q:      l.Queue,
		cs:     l.CS,
		dc:     l.DC,
		rst:    l.RST,
		width:  cfg.Width,
		height: cfg.Height,
	}
	switch cfg.Chip {
	case ChipILI9488:
		return &ili9488{panel: p}, nil
	case ChipST7789:
		return &st7789{panel: p}, nil
	default:
		return nil, ErrUnknownChip
	}
}
