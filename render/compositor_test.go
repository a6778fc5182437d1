package render

import (
	"image/color"
	"testing"
)

func newTestCompositor(t *testing.T, w, h int, sky SkyConfig) *Compositor {
	t.Helper()
	var c Compositor
	err := c.Init(CompositorConfig{Viewport: Viewport{Width: w, Height: h}, Sky: sky})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return &c
}

var testSky = SkyConfig{
	Enabled: true,
	Top:     color.RGBA{R: 0x20, G: 0x60, B: 0xE0},
	Horizon: color.RGBA{R: 0xC0, G: 0xD0, B: 0xF0},
}

func TestInitTwiceFails(t *testing.T) {
	c := newTestCompositor(t, 8, 8, testSky)
	err := c.Init(CompositorConfig{Viewport: Viewport{Width: 8, Height: 8}})
	if err != ErrAlreadyInitialized {
		t.Fatalf("second Init() = %v, want ErrAlreadyInitialized", err)
	}
}

func TestInitBadViewport(t *testing.T) {
	var c Compositor
	if err := c.Init(CompositorConfig{}); err != ErrBadViewport {
		t.Fatalf("Init() = %v, want ErrBadViewport", err)
	}
	if c.Buffer() != nil {
		t.Fatal("Buffer() != nil after failed Init")
	}
}

func TestBufferNilBeforeInit(t *testing.T) {
	var c Compositor
	if c.Buffer() != nil {
		t.Fatal("Buffer() != nil before Init")
	}
	if err := c.FillSky(); err != ErrNotInitialized {
		t.Fatalf("FillSky() = %v, want ErrNotInitialized", err)
	}
}

func TestClearFillsEveryPixel(t *testing.T) {
	// Odd pixel count exercises the unroll remainder.
	c := newTestCompositor(t, 7, 9, SkyConfig{})
	c.Clear(0x1234)
	for i, px := range c.Buffer() {
		if px != 0x1234 {
			t.Fatalf("Buffer()[%d] = %#04x, want 0x1234", i, px)
		}
	}
}

func TestFillSkyAlternatingRows(t *testing.T) {
	c := newTestCompositor(t, 4, 6, testSky)
	if err := c.FillSky(); err != nil {
		t.Fatalf("FillSky: %v", err)
	}
	buf := c.Buffer()
	for y := 0; y < 6; y++ {
		want := skyRowColor(testSky, y, 6)
		for x := 0; x < 4; x++ {
			if buf[y*4+x] != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, buf[y*4+x], want)
			}
		}
	}
	// Adjacent rows differ by the odd-row darkening.
	if buf[0] == buf[4] {
		t.Fatal("rows 0 and 1 share a color, want darkened odd row")
	}
}

func TestFillEmptySkyDepthGate(t *testing.T) {
	c := newTestCompositor(t, 20, 3, testSky)
	c.Clear(0x0000)
	w, h := 20, 3

	const drawn uint16 = 0xBEEF
	depth := make([]uint16, w*h)
	for i := range depth {
		depth[i] = DepthEmpty
	}
	// Drawn geometry at (1,0); shadowed geometry at (2,0); a shadowed
	// but empty pixel at (3,0) must still read as empty.
	depth[1] = 100
	depth[2] = 100 | DepthShadowBit
	depth[3] = DepthEmpty | DepthShadowBit
	buf := c.Buffer()
	buf[1] = drawn
	buf[2] = drawn

	if err := c.FillEmptySky(depth); err != nil {
		t.Fatalf("FillEmptySky: %v", err)
	}

	sky0 := skyRowColor(testSky, 0, h)
	if buf[0] != sky0 {
		t.Fatalf("empty pixel = %#04x, want sky %#04x", buf[0], sky0)
	}
	if buf[1] != drawn || buf[2] != drawn {
		t.Fatalf("drawn pixels overwritten: %#04x %#04x", buf[1], buf[2])
	}
	if buf[3] != sky0 {
		t.Fatalf("shadowed empty pixel = %#04x, want sky %#04x", buf[3], sky0)
	}
	// The tail past the 16-pixel batch is handled too.
	if buf[19] != sky0 {
		t.Fatalf("tail pixel = %#04x, want sky %#04x", buf[19], sky0)
	}
}

func TestFillEmptySkyDimensionMismatch(t *testing.T) {
	c := newTestCompositor(t, 8, 8, testSky)
	c.Clear(0x5555)
	depth := make([]uint16, 8*8-1)
	if err := c.FillEmptySky(depth); err != ErrDepthMismatch {
		t.Fatalf("FillEmptySky() = %v, want ErrDepthMismatch", err)
	}
	// Skipped entirely: no partial writes.
	for i, px := range c.Buffer() {
		if px != 0x5555 {
			t.Fatalf("Buffer()[%d] = %#04x after skipped fill", i, px)
		}
	}
}

func TestSetSkyInvalidatesCache(t *testing.T) {
	c := newTestCompositor(t, 4, 4, testSky)
	c.FillSky()
	before := c.Buffer()[0]

	c.SetSky(SkyConfig{
		Enabled: true,
		Top:     color.RGBA{R: 0xFF},
		Horizon: color.RGBA{R: 0xFF},
	})
	c.FillSky()
	after := c.Buffer()[0]
	if before == after {
		t.Fatalf("sky color unchanged (%#04x) after SetSky", after)
	}
}

func TestUncachedSkyMatchesCached(t *testing.T) {
	cached := newTestCompositor(t, 5, 12, testSky)
	var un Compositor
	err := un.Init(CompositorConfig{
		Viewport:    Viewport{Width: 5, Height: 12},
		Sky:         testSky,
		UncachedSky: true,
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	cached.FillSky()
	un.FillSky()
	for i := range un.Buffer() {
		if cached.Buffer()[i] != un.Buffer()[i] {
			t.Fatalf("pixel %d: cached %#04x != uncached %#04x",
				i, cached.Buffer()[i], un.Buffer()[i])
		}
	}
}

func TestOutlineRectInset(t *testing.T) {
	c := newTestCompositor(t, 10, 10, SkyConfig{})
	c.Clear(0x0000)
	c.OutlineRect(Rect{2, 2, 8, 8}, 0xFFFF)

	buf := c.Buffer()
	// Border sits one pixel inside the rectangle.
	for x := 3; x < 7; x++ {
		if buf[3*10+x] != 0xFFFF {
			t.Fatalf("top border missing at x=%d", x)
		}
		if buf[6*10+x] != 0xFFFF {
			t.Fatalf("bottom border missing at x=%d", x)
		}
	}
	if buf[2*10+2] != 0 {
		t.Fatal("outline drew on the rectangle edge, want one-pixel inset")
	}
	if buf[4*10+4] != 0 {
		t.Fatal("outline filled the interior")
	}
}

func TestClearRect(t *testing.T) {
	c := newTestCompositor(t, 6, 6, SkyConfig{})
	c.Clear(0x0000)
	c.ClearRect(Rect{2, 2, 4, 4}, 0xAAAA)
	buf := c.Buffer()
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := uint16(0)
			if x >= 2 && x < 4 && y >= 2 && y < 4 {
				want = 0xAAAA
			}
			if buf[y*6+x] != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, buf[y*6+x], want)
			}
		}
	}
}
