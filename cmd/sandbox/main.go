package main

import (
	"log"

	"github.com/hubastard/sprig/engine/assets"
	"github.com/hubastard/sprig/engine/core"
	glbackend "github.com/hubastard/sprig/engine/gfx/gl"
	"github.com/hubastard/sprig/engine/platform"
	"github.com/hubastard/sprig/engine/profiler"
	"github.com/hubastard/sprig/engine/scratch"
	"github.com/hubastard/sprig/engine/text"
)

type App struct {
	layers core.LayerStack

	font     *text.SDFFont
	atlasTex *glbackend.Texture
	uirend   *glbackend.UIRenderer
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 20)
	scratch.Init(4 * 1024)

	ttf, err := assets.LoadFont("RobotoMono.ttf")
	if err != nil {
		panic(err)
	}
	a.font, err = text.NewSDFFont(ttf)
	if err != nil {
		panic(err)
	}
	a.atlasTex, err = glbackend.NewTextureGray(a.font.AtlasImage())
	if err != nil {
		panic(err)
	}
	a.font.SetTexture(a.atlasTex)
	a.font.MarkUploaded()

	a.uirend, err = glbackend.NewUIRenderer()
	if err != nil {
		panic(err)
	}

	a.layers.Push(NewUILayer(a.font, a.uirend))
	a.layers.Push(NewDebugLayer(a.font, a.uirend))
	a.layers.ForEach(func(l core.Layer) { l.OnAttach(e) })
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	// Re-upload the atlas if text added glyphs outside the preloaded set.
	if a.font.Dirty() {
		if err := a.atlasTex.UpdateGray(a.font.AtlasImage()); err != nil {
			log.Println("atlas update:", err)
		} else {
			a.font.MarkUploaded()
		}
	}
	a.layers.ForEach(func(l core.Layer) { l.OnUpdate(e, dt) })
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	scratch.Reset()
	a.layers.ForEach(func(l core.Layer) { l.OnRender(e, alpha) })
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	a.layers.ForEachReverse(func(l core.Layer) bool { return l.OnEvent(e, ev) })
}

func (a *App) OnShutdown(e *core.Engine) {
	for {
		l, ok := a.layers.Pop()
		if !ok {
			break
		}
		l.OnDetach(e)
	}
	a.uirend.Shutdown()
	a.atlasTex.Delete()
	_ = a.font.Close()
}

func main() {
	cfg := core.Config{
		Title:      "sprig sandbox",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.06, 0.07, 0.09, 1},
	}

	app := &App{}
	err := core.Run(app, cfg,
		func(c core.Config) (core.Window, error) { return platform.NewGLFWWindow(c) },
		func(w core.Window, c core.Config) (core.Renderer, error) { return glbackend.NewRendererGL(w, c) },
	)
	if err != nil {
		log.Fatal(err)
	}
}
