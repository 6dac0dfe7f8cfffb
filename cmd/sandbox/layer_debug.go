package main

import (
	"log"

	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	glbackend "github.com/hubastard/sprig/engine/gfx/gl"
	"github.com/hubastard/sprig/engine/profiler"
	"github.com/hubastard/sprig/engine/scratch"
	"github.com/hubastard/sprig/engine/text"
	"github.com/hubastard/sprig/engine/ui"
)

// DebugLayer shows frame timing and memory stats in the top-left corner.
// F1 toggles it.
type DebugLayer struct {
	font *text.SDFFont
	rend *glbackend.UIRenderer

	store   *ui.Store
	board   *ui.Board
	visible bool

	frameMS float64
	accum   float64
	frames  int
	since   float64
}

func NewDebugLayer(font *text.SDFFont, rend *glbackend.UIRenderer) *DebugLayer {
	return &DebugLayer{font: font, rend: rend, visible: true}
}

func (l *DebugLayer) OnAttach(e *core.Engine) {
	l.store = ui.NewStore(256)
	l.board = ui.NewBoard(l.buildPanel(), ui.V2(16.0/9.0*layoutHeight, layoutHeight))
	w, h := e.Window.FramebufferSize()
	l.board.ResizeFixedHeight(w, h)
}

func (l *DebugLayer) OnDetach(e *core.Engine) {}

func (l *DebugLayer) OnUpdate(e *core.Engine, dt float64) {
	l.accum += dt
	l.frames++
	l.since += dt

	// Refresh the numbers four times a second; rebuilding every tick would
	// just churn the store.
	if l.since >= 0.25 {
		l.frameMS = l.accum / float64(l.frames) * 1000
		l.accum, l.frames, l.since = 0, 0, 0
		if l.visible {
			l.board.SetElement(l.buildPanel())
		}
	}
}

func (l *DebugLayer) OnRender(e *core.Engine, alpha float64) {
	if !l.visible {
		return
	}
	size := l.board.Size()
	l.rend.Prepare(l.board.Batches())
	l.rend.Render(l.board.Batches(), float32(size.X), float32(size.Y))
}

func (l *DebugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyF1 {
			l.visible = !l.visible
			return true
		}
		if v.Down && v.Key == core.KeyTab && v.Mods&core.ModCtrl != 0 {
			if err := profiler.Dump("sprig.speedscope.json"); err != nil {
				log.Println("profiler dump:", err)
			} else {
				log.Println("profiler dump written")
			}
			return true
		}
	case core.EventResize:
		l.board.ResizeFixedHeight(v.W, v.H)
	}
	return false
}

func (l *DebugLayer) label(s string, c colors.Color) ui.ElementBox {
	return l.store.Text(ui.Text{Sections: []ui.Section{
		&ui.TextRun{Text: s, Font: l.font, Color: c, FontSize: 13},
	}})
}

func (l *DebugLayer) buildPanel() ui.ElementBox {
	s := l.store

	m := scratch.Mark()
	scratch.F().S("frame ").F64(l.frameMS, 2).S(" ms")
	frame := scratch.StringFrom(m)

	m = scratch.Mark()
	scratch.F().S("mem ").F64(float64(profiler.MemoryUsage())/(1<<20), 2).S(" MB")
	mem := scratch.StringFrom(m)

	m = scratch.Mark()
	scratch.F().S("elements ").I(s.Len())
	elems := scratch.StringFrom(m)

	panel := s.Box(ui.Box{
		BoxStyle: ui.BoxStyle{
			Padding: ui.EdgesAll(8),
			Gap:     3,
			Color:   colors.Black.WithAlpha(0.55),
			Border:  ui.Border{Radius: ui.CornersAll(6)},
			ZIndex:  100,
		},
	}.Child(
		l.label("debug (F1)", colors.Yellow),
		l.label(frame, colors.White),
		l.label(mem, colors.White),
		l.label(elems, colors.White),
	))

	return s.Box(ui.Box{
		BoxStyle: ui.BoxStyle{Width: ui.Full, Height: ui.Full, Padding: ui.EdgesAll(10)},
	}.Child(panel))
}
