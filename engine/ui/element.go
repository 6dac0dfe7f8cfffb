package ui

import "github.com/hubastard/sprig/engine/colors"

// Axis selects the direction children of a Box flow in.
type Axis int

const (
	// AxisY lays children out vertically (the default).
	AxisY Axis = iota
	AxisX
)

// MainAlign distributes children along the flow axis.
type MainAlign int

const (
	MainStart MainAlign = iota
	MainCenter
	MainEnd
	MainSpaceBetween
	MainSpaceAround
)

// Align positions each child on the perpendicular axis.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Len is an optional length: auto (children decide), fixed pixels, or a
// fraction of the parent's available space. The zero value is auto.
type Len struct {
	kind lenKind
	val  float64
}

type lenKind int

const (
	lenAuto lenKind = iota
	lenPx
	lenFraction
)

func Px(px float64) Len      { return Len{kind: lenPx, val: px} }
func Fraction(f float64) Len { return Len{kind: lenFraction, val: f} }
func (l Len) IsAuto() bool   { return l.kind == lenAuto }

func (l Len) resolve(full float64) float64 {
	if l.kind == lenFraction {
		return l.val * full
	}
	return l.val
}

// Full is the whole parent extent.
var Full = Fraction(1)

// Edges is per-side padding in layout pixels.
type Edges struct {
	Left, Right, Top, Bottom float64
}

func EdgesAll(v float64) Edges { return Edges{v, v, v, v} }

func (e Edges) Horizontal(v float64) Edges { e.Left, e.Right = v, v; return e }
func (e Edges) Vertical(v float64) Edges   { e.Top, e.Bottom = v, v; return e }

func (e Edges) x() float64 { return e.Left + e.Right }
func (e Edges) y() float64 { return e.Top + e.Bottom }

// Corners holds the four border radii.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft float32
}

func CornersAll(v float32) Corners { return Corners{v, v, v, v} }

type Border struct {
	Color    colors.Color
	Radius   Corners
	Width    float32
	Softness float32
}

type Shadow struct {
	Color colors.Color
	// Width pads the shadow outward in all four directions.
	Width float32
	// Curve shapes the falloff of the distance-field shadow.
	Curve float32
}

// AlphaSdfParams are the cutoff/smoothing parameters for rendering a texture
// whose alpha channel stores signed-distance information.
type AlphaSdfParams struct {
	InToBorderCutoff  float32
	InToBorderSmooth  float32
	BorderToOutCutoff float32
	BorderToOutSmooth float32
}

// TextureRegion is a texture plus the UV rectangle to sample from it.
type TextureRegion struct {
	Texture Texture
	UV      Aabb
}

// Scaled shrinks or grows the sampled region around the origin.
func (r TextureRegion) Scaled(f float32) TextureRegion {
	r.UV = r.UV.Scale(f)
	return r
}

type textureKind int

const (
	texNone textureKind = iota
	texPlain
	texAlphaSdf
)

// TextureSlot is a Box's optional background texture: none, a plain RGBA
// region, or an alpha-SDF region with its parameters.
type TextureSlot struct {
	kind      textureKind
	region    TextureRegion
	sdfParams AlphaSdfParams
}

func PlainTexture(region TextureRegion) TextureSlot {
	return TextureSlot{kind: texPlain, region: region}
}

func AlphaSdfTexture(region TextureRegion, params AlphaSdfParams) TextureSlot {
	return TextureSlot{kind: texAlphaSdf, region: region, sdfParams: params}
}

// BoxStyle carries everything about a Box except its children.
type BoxStyle struct {
	// Width/Height: auto means driven by children along that axis. The two
	// axes resolve independently; a fixed width with auto height is common.
	Width      Len
	Height     Len
	Axis       Axis
	MainAlign  MainAlign
	CrossAlign Align
	Padding    Edges
	// Absolute takes the box out of sibling flow. Anchor is a unit-square
	// position inside the parent's inner area; (0,0) top-left, (1,1)
	// bottom-right. Absolute boxes never grow an auto-sized parent.
	Absolute bool
	Anchor   Vec2
	// Offset shifts the final position after layout.
	Offset Vec2
	// Color fills the box. The exact zero color suppresses the whole
	// primitive, border and shadow included; a zero-alpha fill with nonzero
	// RGB still renders its border and shadow.
	Color   colors.Color
	Border  Border
	Texture TextureSlot
	Shadow  Shadow
	// ZIndex adds to the stacking level of this box and everything below it.
	ZIndex int16
	// Gap is inserted between children on the main axis. It has no effect
	// under MainSpaceBetween or MainSpaceAround.
	Gap float64
}

// Center sets both alignments to centered.
func (s *BoxStyle) Center() {
	s.MainAlign = MainCenter
	s.CrossAlign = AlignCenter
}

// SetSize fixes both axes in pixels.
func (s *BoxStyle) SetSize(w, h float64) {
	s.Width = Px(w)
	s.Height = Px(h)
}

// Box is a container element with flex-like layout.
type Box struct {
	BoxStyle
	Children []ElementBox
}

// Child appends a stored child, returning the box for chaining.
func (b Box) Child(children ...ElementBox) Box {
	b.Children = append(b.Children, children...)
	return b
}

// FullOverlay makes the box a transparent absolute overlay covering the
// whole parent. Transparent boxes emit no primitive of their own.
func (b Box) FullOverlay() Box {
	b.Width = Full
	b.Height = Full
	b.Absolute = true
	b.Anchor = Vec2{}
	b.Color = colors.Transparent
	return b
}

// VFill is a fixed-height spacer box.
func VFill(px float64) Box { return Box{BoxStyle: BoxStyle{Height: Px(px)}} }

// HFill is a fixed-width spacer box.
func HFill(px float64) Box { return Box{BoxStyle: BoxStyle{Width: Px(px)}} }

// RedBox is a quick element for debugging.
func RedBox() Box {
	return Box{BoxStyle: BoxStyle{
		Color:  colors.Red,
		Width:  Px(96),
		Height: Px(48),
		Border: Border{Color: colors.White, Width: 2},
	}}
}

// TextRun is a run of uniformly styled text.
type TextRun struct {
	Text            string
	Font            FontFace
	Color           colors.Color
	FontSize        float32
	ShadowIntensity float32
}

// Inline embeds a stored element into a line of text, bottom-aligned to the
// line. SetsLineHeight raises the line's ascent to at least the element's
// height.
type Inline struct {
	Element        ElementBox
	SetsLineHeight bool
}

// Section is one part of a Text element: either a *TextRun or an *Inline.
type Section interface{ isSection() }

func (*TextRun) isSection() {}
func (*Inline) isSection()  {}

// Text is an element holding a flow of styled runs and inline elements.
type Text struct {
	Sections []Section
	Offset   Vec2
	// ExtraLineGap is added between lines, on top of the font's own gap.
	ExtraLineGap float32
}

// BoxComputed is filled by the layout pass. Overwritten wholesale each pass.
type BoxComputed struct {
	Bounds Bounds
	// ContentSize is the accumulated size of non-absolute children.
	ContentSize Vec2
}

// GlyphRange is a half-open index range into TextComputed.Glyphs.
type GlyphRange struct {
	Start, End int
}

// GlyphQuad is one placed glyph: pixel rectangle plus atlas UV.
type GlyphQuad struct {
	Bounds Rect
	UV     Aabb
}

// TextComputed is filled by the text flow pass. RunGlyphs has one range per
// TextRun section, in section order.
type TextComputed struct {
	Bounds    Bounds
	RunGlyphs []GlyphRange
	Glyphs    []GlyphQuad
}

type nodeKind int

const (
	kindBox nodeKind = iota
	kindText
)

// node is one stored element: a tagged variant with its pre-layout payload
// and post-layout computed record side by side.
type node struct {
	id   ID
	kind nodeKind

	box  Box
	boxC BoxComputed

	text  Text
	textC TextComputed
}

func (n *node) bounds() *Bounds {
	if n.kind == kindBox {
		return &n.boxC.Bounds
	}
	return &n.textC.Bounds
}
