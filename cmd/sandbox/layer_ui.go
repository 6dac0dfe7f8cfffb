package main

import (
	"log"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/colors"
	"github.com/hubastard/sprig/engine/core"
	glbackend "github.com/hubastard/sprig/engine/gfx/gl"
	"github.com/hubastard/sprig/engine/profiler"
	"github.com/hubastard/sprig/engine/scratch"
	"github.com/hubastard/sprig/engine/text"
	"github.com/hubastard/sprig/engine/ui"
)

// Layout-space height; width follows the window's aspect ratio.
const layoutHeight = 540

var (
	idIncrement = ui.NewID("sandbox/increment")
	idReset     = ui.NewID("sandbox/reset")
	idCard      = ui.NewID("sandbox/card")
)

// UILayer drives the interactive demo scene: a card with wrapped text, an
// inline badge, two buttons and an absolutely-positioned overlay.
type UILayer struct {
	font *text.SDFFont
	rend *glbackend.UIRenderer

	store *ui.Store
	board *ui.Board
	photo *glbackend.Texture

	clicks int

	// Interaction snapshot from the last rebuild; a change means the
	// hover/press styling is stale and the tree is rebuilt.
	incState   ui.HotActive
	resetState ui.HotActive
}

func NewUILayer(font *text.SDFFont, rend *glbackend.UIRenderer) *UILayer {
	return &UILayer{font: font, rend: rend}
}

func (l *UILayer) OnAttach(e *core.Engine) {
	l.store = ui.NewStore(ui.DefaultStoreCapacity)

	if img, err := assets.LoadPNG("checker.png"); err == nil {
		if tex, err := glbackend.NewTextureRGBA(img); err == nil {
			l.photo = tex
		}
	} else {
		log.Println("sandbox: no demo texture:", err)
	}

	l.board = ui.NewBoard(l.buildScene(), ui.V2(16.0/9.0*layoutHeight, layoutHeight))
	w, h := e.Window.FramebufferSize()
	l.board.ResizeFixedHeight(w, h)
}

func (l *UILayer) OnDetach(e *core.Engine) {
	if l.photo != nil {
		l.photo.Delete()
	}
}

func (l *UILayer) OnUpdate(e *core.Engine, dt float64) {
	defer profiler.Start("UILayer.OnUpdate")()

	mx, my := e.Input.Mouse()
	_, fbh := e.Window.FramebufferSize()
	l.board.StartFrameFixedHeight(ui.V2(mx, my), e.Input.IsMouseDown(core.MouseButtonLeft), float64(fbh))

	rebuild := false
	if l.board.Interaction(idIncrement).Clicked() {
		l.clicks++
		rebuild = true
	}
	if l.board.Interaction(idReset).Clicked() {
		l.clicks = 0
		rebuild = true
	}

	inc := l.board.Interaction(idIncrement).HotActive
	reset := l.board.Interaction(idReset).HotActive
	if inc != l.incState || reset != l.resetState {
		rebuild = true
	}

	if rebuild {
		l.incState, l.resetState = inc, reset
		l.board.SetElement(l.buildScene())
	}
}

func (l *UILayer) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("UILayer.OnRender")()

	size := l.board.Size()
	l.rend.Prepare(l.board.Batches())
	l.rend.Render(l.board.Batches(), float32(size.X), float32(size.Y))
}

func (l *UILayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.board.ResizeFixedHeight(v.W, v.H)
	}
	return false
}

func (l *UILayer) buildScene() ui.ElementBox {
	s := l.store

	children := []ui.ElementBox{
		l.header(),
		l.paragraph(),
		l.buttonRow(),
	}
	if l.photo != nil {
		children = append(children, s.Box(ui.Box{BoxStyle: ui.BoxStyle{
			Width: ui.Px(96), Height: ui.Px(96),
			Color:   colors.White,
			Texture: ui.PlainTexture(ui.TextureRegion{Texture: l.photo, UV: ui.Aabb{MaxX: 1, MaxY: 1}}),
			Border:  ui.Border{Radius: ui.CornersAll(8)},
		}}))
	}
	children = append(children, l.overlay())

	card := s.BoxWithID(idCard, ui.Box{
		BoxStyle: ui.BoxStyle{
			Width:   ui.Px(420),
			Padding: ui.EdgesAll(20),
			Gap:     14,
			Color:   colors.DarkGray.Scale(1.6).WithAlpha(0.97),
			Border: ui.Border{
				Color:  colors.White.WithAlpha(0.12),
				Radius: ui.CornersAll(12),
				Width:  1,
			},
			Shadow: ui.Shadow{Color: colors.Black.WithAlpha(0.5), Width: 24, Curve: 2},
		},
		Children: children,
	})

	root := ui.Box{BoxStyle: ui.BoxStyle{Width: ui.Full, Height: ui.Full}}
	root.Center()
	return s.Box(root.Child(card))
}

func (l *UILayer) header() ui.ElementBox {
	s := l.store
	badge := s.Box(ui.Box{BoxStyle: ui.BoxStyle{
		Width: ui.Px(34), Height: ui.Px(16),
		Color:  colors.Color{0.16, 0.5, 0.3, 1},
		Border: ui.Border{Radius: ui.CornersAll(8)},
	}})
	return s.Text(ui.Text{Sections: []ui.Section{
		&ui.TextRun{Text: "Sandbox ", Font: l.font, Color: colors.White, FontSize: 26},
		&ui.Inline{Element: badge},
	}})
}

func (l *UILayer) paragraph() ui.ElementBox {
	s := l.store
	return s.Box(ui.Box{BoxStyle: ui.BoxStyle{Width: ui.Full}}.Child(
		s.Text(ui.Text{
			ExtraLineGap: 2,
			Sections: []ui.Section{
				&ui.TextRun{
					Text: "Elements are rebuilt on interaction and retained between " +
						"frames. Resize the window: the layout keeps its height and " +
						"grows sideways. ",
					Font: l.font, Color: colors.White.WithAlpha(0.85), FontSize: 15,
				},
				&ui.TextRun{
					Text: "Words wrap without splitting.",
					Font: l.font, Color: colors.Yellow.WithAlpha(0.9), FontSize: 15,
				},
			},
		}),
	))
}

func (l *UILayer) buttonRow() ui.ElementBox {
	s := l.store

	m := scratch.Mark()
	scratch.F().S("Clicks: ").I(l.clicks)
	counter := scratch.StringFrom(m)

	return s.Box(ui.Box{
		BoxStyle: ui.BoxStyle{Axis: ui.AxisX, Gap: 10, CrossAlign: ui.AlignCenter},
	}.Child(
		l.button(idIncrement, "Click me", l.incState),
		l.button(idReset, "Reset", l.resetState),
		s.Box(ui.HFill(6)),
		s.Text(ui.Text{Sections: []ui.Section{
			&ui.TextRun{Text: counter, Font: l.font, Color: colors.White, FontSize: 15},
		}}),
	))
}

func (l *UILayer) button(id ui.ID, label string, state ui.HotActive) ui.ElementBox {
	s := l.store

	color := colors.Color{0.2, 0.35, 0.65, 1}
	switch state {
	case ui.StateHot:
		color = color.Scale(1.25)
	case ui.StateActive:
		color = color.Scale(0.8)
	}

	style := ui.BoxStyle{
		Padding: ui.EdgesAll(6).Horizontal(14),
		Color:   color,
		Border:  ui.Border{Radius: ui.CornersAll(6)},
	}
	style.Center()
	return s.BoxWithID(id, ui.Box{BoxStyle: style}.Child(
		s.Text(ui.Text{Sections: []ui.Section{
			&ui.TextRun{Text: label, Font: l.font, Color: colors.White, FontSize: 15},
		}}),
	))
}

// overlay pins a small tag to the card's top-right corner, above everything
// else in the card.
func (l *UILayer) overlay() ui.ElementBox {
	s := l.store
	style := ui.BoxStyle{
		Absolute: true,
		Anchor:   ui.V2(1, 0),
		Offset:   ui.V2(10, -10),
		Padding:  ui.EdgesAll(4).Horizontal(8),
		Color:    colors.Color{0.55, 0.2, 0.2, 1},
		Border:   ui.Border{Radius: ui.CornersAll(9)},
		ZIndex:   10,
	}
	return s.Box(ui.Box{BoxStyle: style}.Child(
		s.Text(ui.Text{Sections: []ui.Section{
			&ui.TextRun{Text: "live", Font: l.font, Color: colors.White, FontSize: 12},
		}}),
	))
}
