package render

import (
	"fmt"
	"image/color"

	"prism/display"
	"prism/hal"

	"tinygo.org/x/tinyfont"
)

// statsLogInterval is how many frames pass between periodic stats lines.
const statsLogInterval = 64

// outlineColor is the fixed highlight for debug redraw outlines.
const outlineColor uint16 = 0xF81F // magenta

var hudColor = color.RGBA{R: 0xFF, G: 0xDD, B: 0x66, A: 0xFF}

// FrameStats are aggregate counters supplied by the rasterizer.
type FrameStats struct {
	Triangles int
	Instances int
}

// FrameInfo carries the per-frame flags and counters into FinalizeFrame.
type FrameInfo struct {
	ForceFull     bool
	CameraChanged bool
	Stats         FrameStats
}

// Config is the renderer setup. ClearColor is used when the sky is
// disabled; DebugOutlines and StatsHUD are visual diagnostics.
type Config struct {
	Viewport      Viewport
	Sky           SkyConfig
	UncachedSky   bool
	ClearColor    uint16
	DebugOutlines bool
	StatsHUD      bool
}

// Renderer ties the compositor, the dirty region tracker and a display
// driver into the per-frame control flow: BeginFrame, damage reports,
// FinalizeFrame. It is explicitly constructed and owned by the caller;
// there is no process-wide instance.
type Renderer struct {
	cfg   Config
	comp  Compositor
	track *Tracker
	drv   display.Driver
	log   hal.Logger

	frames   uint32
	fulls    uint32
	partials uint32
}

// New builds a renderer over drv. log may be nil.
func New(cfg Config, drv display.Driver, log hal.Logger) (*Renderer, error) {
	r := &Renderer{cfg: cfg, drv: drv, log: log}
	err := r.comp.Init(CompositorConfig{
		Viewport:    cfg.Viewport,
		Sky:         cfg.Sky,
		UncachedSky: cfg.UncachedSky,
	})
	if err != nil {
		return nil, err
	}
	r.track = NewTracker(cfg.Viewport)
	return r, nil
}

// Compositor exposes the owned compositor to the rasterizer.
func (r *Renderer) Compositor() *Compositor { return &r.comp }

// Tracker exposes the damage tracker.
func (r *Renderer) Tracker() *Tracker { return r.track }

// BeginFrame prepares the pixel buffer for the frame's geometry. With
// the sky enabled the buffer is left alone: uncovered pixels get their
// sky color at finalize time through the depth mask, so clearing here
// would be wasted work.
func (r *Renderer) BeginFrame() {
	if !r.cfg.Sky.Enabled {
		r.comp.Clear(r.cfg.ClearColor)
	}
}

// ReportEntityDamage records a changed screen region for an entity.
func (r *Renderer) ReportEntityDamage(handle any, rect Rect) {
	r.track.ReportEntity(handle, rect)
}

// ReportOverlayDamage records a changed HUD region.
func (r *Renderer) ReportOverlayDamage(rect Rect) {
	r.track.ReportOverlay(rect)
}

// FinalizeFrame completes the frame: composites the sky behind drawn
// geometry, computes the redraw plan and pushes exactly its regions to
// the panel. depth may be nil when the sky is disabled. Push and
// composite errors are reported and returned, never fatal; the buffer
// is fully rewritten next frame anyway.
func (r *Renderer) FinalizeFrame(info FrameInfo, depth []uint16) error {
	if r.cfg.Sky.Enabled && depth != nil {
		if err := r.comp.FillEmptySky(depth); err != nil {
			r.report(err)
		}
	}

	if r.cfg.StatsHUD {
		r.drawStatsHUD(info.Stats)
	}

	plan := r.track.Finalize(info.ForceFull, info.CameraChanged)

	if r.cfg.DebugOutlines && !plan.Full {
		for _, rect := range plan.Rects {
			r.comp.OutlineRect(rect, outlineColor)
		}
	}

	var err error
	if plan.Full {
		r.fulls++
		err = r.drv.PushFrame(r.comp.Buffer())
	} else {
		r.partials++
		for _, rect := range plan.Rects {
			e := r.drv.PushRect(rect.X0, rect.Y0, rect.X1-rect.X0, rect.Y1-rect.Y0, r.comp.Buffer())
			if e != nil {
				err = e
				break
			}
		}
	}
	if err != nil {
		r.report(err)
	}

	r.frames++
	if r.log != nil && r.frames%statsLogInterval == 0 {
		r.log.WriteLineString(fmt.Sprintf(
			"frame %d: tris=%d inst=%d full=%d partial=%d",
			r.frames, info.Stats.Triangles, info.Stats.Instances, r.fulls, r.partials))
	}
	return err
}

func (r *Renderer) report(err error) {
	if r.log != nil {
		r.log.WriteLineString("render: " + err.Error())
	}
}

// drawStatsHUD writes the frame counters into the top-left corner and
// reports the text box as overlay damage so the HUD participates in
// normal dirty tracking.
func (r *Renderer) drawStatsHUD(stats FrameStats) {
	text := fmt.Sprintf("t:%d i:%d", stats.Triangles, stats.Instances)
	tinyfont.WriteLine(r.comp.Displayer(), &tinyfont.Org01, 2, 8, text, hudColor)
	_, boxWidth := tinyfont.LineWidth(&tinyfont.Org01, text)
	r.track.ReportOverlay(Rect{0, 0, int(boxWidth) + 4, 12})
}
