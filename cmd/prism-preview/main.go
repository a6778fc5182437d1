//go:build !tinygo

// Command prism-preview runs the full compositor/tracker/transport
// pipeline against the panel simulator and shows the simulated panel in
// a desktop window: a bouncing quad over the sky gradient, with debug
// redraw outlines and the stats HUD enabled.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"prism/display"
	"prism/hal"
	"prism/internal/buildinfo"
	"prism/render"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	panelW = 320
	panelH = 240

	quadSize = 48
)

type game struct {
	r     *render.Renderer
	sim   *hal.PanelSim
	depth []uint16

	x, y   int
	vx, vy int
	frame  int

	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *game) Update() error {
	g.r.BeginFrame()
	for i := range g.depth {
		g.depth[i] = render.DepthEmpty
	}

	g.x += g.vx
	g.y += g.vy
	if g.x <= 0 || g.x+quadSize >= panelW {
		g.vx = -g.vx
		g.x += g.vx
	}
	if g.y <= 0 || g.y+quadSize >= panelH {
		g.vy = -g.vy
		g.y += g.vy
	}

	// Stand-in for the rasterizer: a flat-colored quad with uniform depth.
	quadColor := hal.RGB565(uint8(80+g.frame%160), 40, 200)
	buf := g.r.Compositor().Buffer()
	for y := g.y; y < g.y+quadSize; y++ {
		for x := g.x; x < g.x+quadSize; x++ {
			buf[y*panelW+x] = quadColor
			g.depth[y*panelW+x] = 100
		}
	}
	// The tracker keeps the vacated footprint itself, so only the new
	// position is reported.
	g.r.ReportEntityDamage(g, render.Rect{X0: g.x, Y0: g.y, X1: g.x + quadSize, Y1: g.y + quadSize})

	info := render.FrameInfo{
		ForceFull: g.frame == 0,
		Stats:     render.FrameStats{Triangles: 2, Instances: 1},
	}
	g.frame++
	return g.r.FinalizeFrame(info, g.depth)
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, panelW, panelH))
		g.fbImg = ebiten.NewImage(panelW, panelH)
	}
	src := g.sim.Image()
	dst := g.img.Pix
	for i := 0; i < panelW*panelH; i++ {
		dst[i*4+0] = src[i*3+0]
		dst[i*4+1] = src[i*3+1]
		dst[i*4+2] = src[i*3+2]
		dst[i*4+3] = 0xFF
	}
	g.fbImg.ReplacePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return panelW, panelH
}

func main() {
	var outlines bool
	var hud bool
	flag.BoolVar(&outlines, "outlines", true, "Draw debug redraw outlines.")
	flag.BoolVar(&hud, "hud", true, "Draw the frame stats HUD.")
	flag.Parse()

	sim := hal.NewPanelSim(panelW, panelH)
	drv, err := display.New(display.Config{
		Chip:  display.ChipILI9488,
		Width: panelW, Height: panelH,
		Link: hal.Link{Bus: sim, CS: sim.CSPin(), DC: sim.DCPin(), RST: sim.ResetPin()},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := drv.Configure(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r, err := render.New(render.Config{
		Viewport: render.Viewport{Width: panelW, Height: panelH},
		Sky: render.SkyConfig{
			Enabled: true,
			Top:     color.RGBA{R: 0x18, G: 0x48, B: 0xC8},
			Horizon: color.RGBA{R: 0xB8, G: 0xD0, B: 0xF0},
		},
		DebugOutlines: outlines,
		StatsHUD:      hud,
	}, drv, hal.NewStdoutLogger())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g := &game{
		r:     r,
		sim:   sim,
		depth: make([]uint16, panelW*panelH),
		x:     40, y: 60, vx: 2, vy: 2,
	}

	ebiten.SetWindowTitle("prism preview (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(panelW*2, panelH*2)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
