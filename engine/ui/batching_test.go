package ui

import (
	"testing"

	"github.com/hubastard/sprig/engine/colors"
)

func colored(s *Store, c colors.Color, children ...ElementBox) ElementBox {
	return s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(10), Height: Px(10), Color: c},
		Children: children,
	})
}

func layoutAndBatch(e ElementBox) ElementBatches {
	e.LayoutIn(V2(1000, 1000), Vec2{}, nil)
	return e.Batches()
}

func TestBatchNestingOrder(t *testing.T) {
	s := NewStore(16)

	// Parents paint under their children.
	root := colored(s, colors.Red, colored(s, colors.Green, colored(s, colors.Blue)))
	b := layoutAndBatch(root)

	if got := len(b.Rects); got != 3 {
		t.Fatalf("rects = %d, want 3", got)
	}
	want := []colors.Color{colors.Red, colors.Green, colors.Blue}
	for i, w := range want {
		if b.Rects[i].Color != w {
			t.Errorf("rect %d color = %v, want %v", i, b.Rects[i].Color, w)
		}
	}
	if got := len(b.Batches); got != 1 {
		t.Errorf("batches = %d, want 1 merged run", got)
	}
}

func TestBatchZIndexBeatsNesting(t *testing.T) {
	s := NewStore(16)

	// A raised child of the first sibling paints over the second sibling,
	// and the z-index carries into its own children.
	raisedChild := colored(s, colors.Cyan)
	raised := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(5), Height: Px(5), Color: colors.Blue, ZIndex: 1},
		Children: []ElementBox{raisedChild},
	})
	first := colored(s, colors.Red, raised)
	second := colored(s, colors.Green)
	root := s.Box(Box{BoxStyle: BoxStyle{}}.Child(first, second))

	b := layoutAndBatch(root)

	want := []colors.Color{colors.Red, colors.Green, colors.Blue, colors.Cyan}
	if got := len(b.Rects); got != len(want) {
		t.Fatalf("rects = %d, want %d", got, len(want))
	}
	for i, w := range want {
		if b.Rects[i].Color != w {
			t.Errorf("rect %d color = %v, want %v", i, b.Rects[i].Color, w)
		}
	}
}

func TestBatchTransparentFillDropsPrimitive(t *testing.T) {
	s := NewStore(16)

	// A transparent fill suppresses the primitive even when its border
	// would be visible. The children still render.
	root := s.Box(Box{
		BoxStyle: BoxStyle{
			Width: Px(10), Height: Px(10),
			Color:  colors.Transparent,
			Border: Border{Color: colors.White, Width: 2},
		},
	}.Child(colored(s, colors.Red)))

	b := layoutAndBatch(root)

	if got := len(b.Rects); got != 1 {
		t.Fatalf("rects = %d, want only the child", got)
	}
	if b.Rects[0].Color != colors.Red {
		t.Errorf("rect color = %v, want the child's red", b.Rects[0].Color)
	}
}

func TestBatchZeroAlphaFillKeepsBorder(t *testing.T) {
	s := NewStore(16)

	// Only the exact zero color drops a box. A zero-alpha fill with nonzero
	// RGB stays, so its border and shadow render without a fill.
	root := s.Box(Box{
		BoxStyle: BoxStyle{
			Width: Px(10), Height: Px(10),
			Color:  colors.Red.WithAlpha(0),
			Border: Border{Color: colors.White, Width: 2},
		},
	})

	b := layoutAndBatch(root)

	if got := len(b.Rects); got != 1 {
		t.Fatalf("rects = %d, want 1", got)
	}
	if got := b.Rects[0].BorderColor; got != colors.White {
		t.Errorf("border color = %v, want white", got)
	}
}

func TestBatchTextPaintsOverSiblingBoxes(t *testing.T) {
	s := NewStore(16)
	font := newFakeFont(1)

	label := s.Text(Text{Sections: []Section{
		&TextRun{Text: "hi", Font: font, FontSize: 10},
	}})
	// The text comes first in the tree but must still paint over the
	// box that follows it.
	root := s.Box(Box{}.Child(label, colored(s, colors.Red)))

	b := layoutAndBatch(root)

	if len(b.Glyphs) != 2 || len(b.Rects) != 1 {
		t.Fatalf("glyphs = %d rects = %d, want 2 and 1", len(b.Glyphs), len(b.Rects))
	}
	if len(b.Batches) != 2 {
		t.Fatalf("batches = %v, want rect run then glyph run", b.Batches)
	}
	if b.Batches[0].Kind != BatchRects || b.Batches[1].Kind != BatchGlyphs {
		t.Errorf("batch kinds = %v %v, want rects then glyphs", b.Batches[0].Kind, b.Batches[1].Kind)
	}
}

func TestBatchRunsSplitOnResource(t *testing.T) {
	s := NewStore(16)
	texA := &fakeTexture{key: NextResourceKey()}
	texB := &fakeTexture{key: NextResourceKey()}

	textured := func(tex Texture) ElementBox {
		return s.Box(Box{BoxStyle: BoxStyle{
			Width: Px(10), Height: Px(10), Color: colors.White,
			Texture: PlainTexture(TextureRegion{Texture: tex, UV: Aabb{MaxX: 1, MaxY: 1}}),
		}})
	}
	root := s.Box(Box{}.Child(
		textured(texA), textured(texA), textured(texB),
	))

	b := layoutAndBatch(root)

	if got := len(b.TexturedRects); got != 3 {
		t.Fatalf("textured rects = %d, want 3", got)
	}
	if got := len(b.Batches); got != 2 {
		t.Fatalf("batches = %d, want 2 (texA run, texB run)", got)
	}
	first, second := b.Batches[0], b.Batches[1]
	if first.Start != 0 || first.End != 2 || second.Start != 2 || second.End != 3 {
		t.Errorf("ranges = [%d,%d) [%d,%d), want [0,2) [2,3)", first.Start, first.End, second.Start, second.End)
	}
	if first.Key != texA.key || second.Key != texB.key {
		t.Errorf("keys = %d %d, want %d %d", first.Key, second.Key, texA.key, texB.key)
	}
}

func TestBatchAlphaSdfKeyDistinctFromPlain(t *testing.T) {
	s := NewStore(16)
	tex := &fakeTexture{key: 7}
	region := TextureRegion{Texture: tex, UV: Aabb{MaxX: 1, MaxY: 1}}

	root := s.Box(Box{}.Child(
		s.Box(Box{BoxStyle: BoxStyle{
			Width: Px(10), Height: Px(10), Color: colors.White,
			Texture: PlainTexture(region),
		}}),
		s.Box(Box{BoxStyle: BoxStyle{
			Width: Px(10), Height: Px(10), Color: colors.White,
			Texture: AlphaSdfTexture(region, AlphaSdfParams{InToBorderCutoff: 0.5}),
		}}),
	))

	b := layoutAndBatch(root)

	if len(b.Batches) != 2 {
		t.Fatalf("batches = %d, want separate plain and SDF runs", len(b.Batches))
	}
	if b.Batches[0].Key == b.Batches[1].Key {
		t.Error("plain and alpha-SDF runs over the same texture must not share a key")
	}
	if b.Batches[1].Kind != BatchAlphaSdfRects {
		t.Errorf("second batch kind = %v, want alpha-SDF", b.Batches[1].Kind)
	}
	if got := b.AlphaSdfRects[0].Params[0]; got != 0.5 {
		t.Errorf("sdf params[0] = %v, want 0.5", got)
	}
}

func TestBatchGlyphRunsMergePerFont(t *testing.T) {
	s := NewStore(16)
	fontA := newFakeFont(NextResourceKey())
	fontB := newFakeFont(NextResourceKey())

	label := s.Text(Text{Sections: []Section{
		&TextRun{Text: "ab", Font: fontA, Color: colors.White, FontSize: 10},
		&TextRun{Text: "cd", Font: fontA, Color: colors.Gray, FontSize: 10},
		&TextRun{Text: "e", Font: fontB, Color: colors.White, FontSize: 10},
	}})

	b := layoutAndBatch(label)

	if got := len(b.Glyphs); got != 5 {
		t.Fatalf("glyphs = %d, want 5", got)
	}
	if got := len(b.Batches); got != 2 {
		t.Fatalf("batches = %d, want one per font", got)
	}
	if b.Batches[0].End != 4 || b.Batches[1].End != 5 {
		t.Errorf("ranges end at %d and %d, want 4 and 5", b.Batches[0].End, b.Batches[1].End)
	}
	if b.Batches[0].Font.FontKey() != fontA.FontKey() {
		t.Error("first glyph batch must bind the first font")
	}
	// Per-run color still varies inside the merged batch.
	if b.Glyphs[0].Color == b.Glyphs[2].Color {
		t.Error("glyph color must come from its own run")
	}
}

func TestBatchRectInstanceFields(t *testing.T) {
	s := NewStore(16)

	e := s.Box(Box{BoxStyle: BoxStyle{
		Width: Px(30), Height: Px(20),
		Color:  colors.Blue,
		Border: Border{Color: colors.White, Radius: CornersAll(4), Width: 2, Softness: 1},
		Shadow: Shadow{Color: colors.Black, Width: 6, Curve: 2},
	}})
	b := layoutAndBatch(e)

	if len(b.Rects) != 1 {
		t.Fatalf("rects = %d, want 1", len(b.Rects))
	}
	r := b.Rects[0]
	if r.Bounds != (Aabb{MinX: 0, MinY: 0, MaxX: 30, MaxY: 20}) {
		t.Errorf("bounds = %+v", r.Bounds)
	}
	if r.BorderRadius != [4]float32{4, 4, 4, 4} {
		t.Errorf("radius = %v", r.BorderRadius)
	}
	if r.BorderParams != [4]float32{2, 1, 6, 2} {
		t.Errorf("border params = %v", r.BorderParams)
	}
	if r.ShadowColor != colors.Black {
		t.Errorf("shadow color = %v", r.ShadowColor)
	}
}
