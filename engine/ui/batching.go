package ui

import (
	"sort"

	"github.com/hubastard/sprig/engine/colors"
)

// sdfKeySalt separates alpha-SDF batch keys from plain-texture batch keys
// derived from the same texture.
const sdfKeySalt uint64 = 21891209983212317

// StackingLevel orders primitives for painting: explicit z-index first, then
// text over the boxes it sits in, then inner elements over outer ones.
type StackingLevel struct {
	ZIndex       int16
	TextLevel    uint16
	NestingLevel uint16
}

func (a StackingLevel) less(b StackingLevel) bool {
	if a.ZIndex != b.ZIndex {
		return a.ZIndex < b.ZIndex
	}
	if a.TextLevel != b.TextLevel {
		return a.TextLevel < b.TextLevel
	}
	return a.NestingLevel < b.NestingLevel
}

// BatchKind selects which instance array a batch's range indexes into.
type BatchKind uint8

const (
	BatchRects BatchKind = iota
	BatchTexturedRects
	BatchAlphaSdfRects
	BatchGlyphs
)

// Batch is a run of consecutive instances sharing one pipeline and one
// resource. [Start, End) indexes the ElementBatches array matching Kind.
type Batch struct {
	Kind BatchKind
	// Key disambiguates batches of the same kind bound to different
	// resources. Plain rects always use key 0.
	Key        uint64
	Texture    Texture  // textured and alpha-SDF batches
	Font       FontFace // glyph batches
	Start, End int
}

// RectInstance is one solid rounded-border rectangle, laid out to match the
// GPU-side vertex attributes.
type RectInstance struct {
	Bounds       Aabb
	Color        colors.Color
	BorderRadius [4]float32 // top-left, top-right, bottom-right, bottom-left
	BorderColor  colors.Color
	BorderParams [4]float32 // border width, border softness, shadow width, shadow curve
	ShadowColor  colors.Color
}

// TexturedRectInstance is a RectInstance sampling an RGBA texture region.
type TexturedRectInstance struct {
	RectInstance
	UV Aabb
}

// AlphaSdfRectInstance renders a texture region whose alpha channel holds
// signed-distance data.
type AlphaSdfRectInstance struct {
	Bounds Aabb
	Color  colors.Color
	Params [4]float32 // in/border cutoff+smooth, border/out cutoff+smooth
	UV     Aabb
}

// GlyphInstance is one glyph quad sampling a font's SDF atlas.
type GlyphInstance struct {
	Bounds          Aabb
	Color           colors.Color
	UV              Aabb
	ShadowIntensity float32
}

// ElementBatches is the draw-ready form of an element tree: four instance
// arrays (one per pipeline) plus the ordered batch list that walks them.
type ElementBatches struct {
	Rects         []RectInstance
	TexturedRects []TexturedRectInstance
	AlphaSdfRects []AlphaSdfRectInstance
	Glyphs        []GlyphInstance
	Batches       []Batch
}

type primKind uint8

const (
	primRect primKind = iota
	primTexturedRect
	primAlphaSdfRect
	primGlyphRun
)

type prim struct {
	level StackingLevel
	kind  primKind
	node  *node    // box prims
	run   *TextRun // glyph prims
	text  *node
	// glyphs indexes text.textC.Glyphs for glyph prims.
	glyphs GlyphRange
}

// Batches flattens the laid-out tree under e into sorted instance arrays.
// Call it after layout; it reads the computed bounds.
func (e ElementBox) Batches() ElementBatches {
	var prims []prim
	collectPrims(e, StackingLevel{}, &prims)

	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].level.less(prims[j].level)
	})

	var out ElementBatches
	for _, p := range prims {
		out.push(p)
	}
	return out
}

func collectPrims(e ElementBox, level StackingLevel, out *[]prim) {
	level.NestingLevel++
	n := e.mustNode()
	switch n.kind {
	case kindBox:
		level.ZIndex += n.box.ZIndex
		// Exactly the zero color drops the whole primitive, border and
		// shadow included. A zero-alpha fill with nonzero RGB is kept: that
		// is the way to draw a border or shadow without a fill.
		if n.box.Color != colors.Transparent {
			k := primRect
			switch n.box.Texture.kind {
			case texPlain:
				k = primTexturedRect
			case texAlphaSdf:
				k = primAlphaSdfRect
			}
			*out = append(*out, prim{level: level, kind: k, node: n})
		}
		for _, ch := range n.box.Children {
			collectPrims(ch, level, out)
		}
	case kindText:
		level.TextLevel++
		runIdx := 0
		for _, sec := range n.text.Sections {
			switch sec := sec.(type) {
			case *TextRun:
				r := n.textC.RunGlyphs[runIdx]
				runIdx++
				*out = append(*out, prim{level: level, kind: primGlyphRun, run: sec, text: n, glyphs: r})
			case *Inline:
				collectPrims(sec.Element, level, out)
			}
		}
	}
}

func (p prim) batchKey() uint64 {
	switch p.kind {
	case primTexturedRect:
		return p.node.box.Texture.region.Texture.TextureKey()
	case primAlphaSdfRect:
		return p.node.box.Texture.region.Texture.TextureKey() ^ sdfKeySalt
	case primGlyphRun:
		return p.run.Font.FontKey()
	default:
		return 0
	}
}

func (b *ElementBatches) push(p prim) {
	kind := BatchKind(p.kind) // prim kinds mirror batch kinds
	key := p.batchKey()

	if n := len(b.Batches); n == 0 || b.Batches[n-1].Kind != kind || b.Batches[n-1].Key != key {
		nb := Batch{Kind: kind, Key: key, Start: b.kindLen(kind)}
		switch p.kind {
		case primTexturedRect, primAlphaSdfRect:
			nb.Texture = p.node.box.Texture.region.Texture
		case primGlyphRun:
			nb.Font = p.run.Font
		}
		b.Batches = append(b.Batches, nb)
	}

	switch p.kind {
	case primRect:
		b.Rects = append(b.Rects, rectInstance(p.node))
	case primTexturedRect:
		b.TexturedRects = append(b.TexturedRects, TexturedRectInstance{
			RectInstance: rectInstance(p.node),
			UV:           p.node.box.Texture.region.UV,
		})
	case primAlphaSdfRect:
		s := p.node.box.Texture
		b.AlphaSdfRects = append(b.AlphaSdfRects, AlphaSdfRectInstance{
			Bounds: boundsToAabb(p.node.boxC.Bounds),
			Color:  p.node.box.Color,
			Params: [4]float32{
				s.sdfParams.InToBorderCutoff,
				s.sdfParams.InToBorderSmooth,
				s.sdfParams.BorderToOutCutoff,
				s.sdfParams.BorderToOutSmooth,
			},
			UV: s.region.UV,
		})
	case primGlyphRun:
		for _, q := range p.text.textC.Glyphs[p.glyphs.Start:p.glyphs.End] {
			b.Glyphs = append(b.Glyphs, GlyphInstance{
				Bounds:          AabbFromRect(q.Bounds),
				Color:           p.run.Color,
				UV:              q.UV,
				ShadowIntensity: p.run.ShadowIntensity,
			})
		}
	}

	b.Batches[len(b.Batches)-1].End = b.kindLen(kind)
}

func (b *ElementBatches) kindLen(k BatchKind) int {
	switch k {
	case BatchRects:
		return len(b.Rects)
	case BatchTexturedRects:
		return len(b.TexturedRects)
	case BatchAlphaSdfRects:
		return len(b.AlphaSdfRects)
	default:
		return len(b.Glyphs)
	}
}

func rectInstance(n *node) RectInstance {
	b := &n.box.BoxStyle
	return RectInstance{
		Bounds: boundsToAabb(n.boxC.Bounds),
		Color:  b.Color,
		BorderRadius: [4]float32{
			b.Border.Radius.TopLeft,
			b.Border.Radius.TopRight,
			b.Border.Radius.BottomRight,
			b.Border.Radius.BottomLeft,
		},
		BorderColor:  b.Border.Color,
		BorderParams: [4]float32{b.Border.Width, b.Border.Softness, b.Shadow.Width, b.Shadow.Curve},
		ShadowColor:  b.Shadow.Color,
	}
}
