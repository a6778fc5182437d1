package render

// trackerSlots bounds per-entity damage tracking memory. When all slots
// are taken, damage from new entities folds into the un-keyed world
// aggregate instead.
const trackerSlots = 24

// Full-frame fallback threshold: when the merged dirty area reaches
// 7/10 of the viewport, one full transfer beats per-rectangle overhead.
// The ratio is empirical; keep it literal unless recalibrated.
const (
	fullRedrawAreaNum = 7
	fullRedrawAreaDen = 10
)

type damageSlot struct {
	handle  any
	cur     Rect
	prev    Rect
	hasCur  bool
	hasPrev bool
}

type aggregate struct {
	r     Rect
	valid bool
}

func (a *aggregate) add(r Rect) {
	if a.valid {
		a.r = a.r.Union(r)
	} else {
		a.r = r
		a.valid = true
	}
}

// Plan is the per-frame redraw instruction. When Full is set the whole
// viewport is pushed; otherwise Rects lists the merged damage
// rectangles, including the HUD rectangle when present. Rects aliases
// tracker-owned storage and is valid until the next Finalize.
type Plan struct {
	Full  bool
	Rects []Rect
}

// Tracker accumulates damage rectangles across one frame and decides
// between a full-screen redraw and a set of partial rectangles.
//
// Entity handles are opaque comparable values (typically pointers) with
// stable identity across frames; nil routes into the un-keyed world
// aggregate. A slot's previous-frame rectangle is kept for one frame so
// the area an entity vacated is redrawn after it stops moving.
type Tracker struct {
	vp Viewport

	slots [trackerSlots]damageSlot

	world     aggregate // un-keyed damage, current frame
	worldPrev aggregate // one-frame-lagged world union
	hud       aggregate

	planRects []Rect // reused backing for Plan.Rects
}

func NewTracker(vp Viewport) *Tracker {
	return &Tracker{vp: vp}
}

func (t *Tracker) Viewport() Viewport { return t.vp }

// ReportEntity widens the damage recorded for handle by r (clipped to
// the viewport). Repeat reports for one handle within a frame take the
// running union. A nil handle, or a new handle when the table is full,
// folds into the world aggregate.
func (t *Tracker) ReportEntity(handle any, r Rect) {
	c := r.Clip(t.vp)
	if c.Empty() {
		return
	}
	if handle == nil {
		t.world.add(c)
		return
	}

	var free *damageSlot
	for i := range t.slots {
		s := &t.slots[i]
		if s.handle == handle {
			if s.hasCur {
				s.cur = s.cur.Union(c)
			} else {
				s.cur = c
				s.hasCur = true
			}
			return
		}
		if free == nil && s.handle == nil {
			free = s
		}
	}
	if free == nil {
		// Table full: degrade gracefully into the aggregate.
		t.world.add(c)
		return
	}
	free.handle = handle
	free.cur = c
	free.hasCur = true
	free.hasPrev = false
}

// ReportOverlay widens the HUD damage by r (clipped to the viewport).
func (t *Tracker) ReportOverlay(r Rect) {
	c := r.Clip(t.vp)
	if c.Empty() {
		return
	}
	t.hud.add(c)
}

// Finalize computes the redraw plan for the frame and advances the
// tracking state. forceFull or cameraChanged invalidates every
// incremental assumption and yields the full-frame plan.
func (t *Tracker) Finalize(forceFull, cameraChanged bool) Plan {
	if forceFull || cameraChanged {
		t.Reset()
		return Plan{Full: true}
	}

	rects := t.planRects[:0]

	for i := range t.slots {
		s := &t.slots[i]
		if s.handle == nil {
			continue
		}
		switch {
		case s.hasCur:
			contrib := s.cur
			if s.hasPrev {
				// The vacated prior-frame footprint must be redrawn too.
				contrib = contrib.Union(s.prev)
			}
			rects = append(rects, contrib)
			s.prev = s.cur
			s.hasPrev = true
			s.hasCur = false
		case s.hasPrev:
			// No damage this frame: clear the stale footprint once,
			// then forget the handle.
			rects = append(rects, s.prev)
			*s = damageSlot{}
		default:
			*s = damageSlot{}
		}
	}

	switch {
	case t.world.valid:
		contrib := t.world.r
		if t.worldPrev.valid {
			contrib = contrib.Union(t.worldPrev.r)
		}
		rects = append(rects, contrib)
		t.worldPrev = t.world
		t.world.valid = false
	case t.worldPrev.valid:
		rects = append(rects, t.worldPrev.r)
		t.worldPrev.valid = false
	}

	if len(rects) == 0 && !t.hud.valid {
		// Nothing changed, but the caller still flushes every frame.
		// One full push is the cheapest correct behavior.
		t.Reset()
		return Plan{Full: true}
	}

	rects = mergeDamage(rects)

	total := 0
	for _, r := range rects {
		total += r.Area()
	}
	hudRect := t.hud.r
	hasHUD := t.hud.valid && !hudRect.Empty()
	if hasHUD {
		total += hudRect.Area()
	}
	if total*fullRedrawAreaDen >= t.vp.Area()*fullRedrawAreaNum {
		t.Reset()
		return Plan{Full: true}
	}

	if hasHUD {
		rects = append(rects, hudRect)
	}
	t.hud.valid = false
	t.planRects = rects
	return Plan{Rects: rects}
}

// Reset drops all tracking state, current and lagged.
func (t *Tracker) Reset() {
	for i := range t.slots {
		t.slots[i] = damageSlot{}
	}
	t.world = aggregate{}
	t.worldPrev = aggregate{}
	t.hud = aggregate{}
}

// mergeDamage greedily merges rectangles in place while any two overlap
// or touch, until a fixed point. Quadratic, but the input count is
// bounded by the slot capacity.
func mergeDamage(rs []Rect) []Rect {
	for {
		changed := false
		for i := 0; i < len(rs); i++ {
			for j := i + 1; j < len(rs); {
				if rs[i].Touches(rs[j]) {
					rs[i] = rs[i].Union(rs[j])
					rs[j] = rs[len(rs)-1]
					rs = rs[:len(rs)-1]
					changed = true
				} else {
					j++
				}
			}
		}
		if !changed {
			return rs
		}
	}
}
