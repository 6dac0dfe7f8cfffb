package ui

import "sync/atomic"

// Texture identifies a GPU texture resource for batching. The engine never
// looks inside: it only needs a process-unique key so consecutive primitives
// sharing a texture merge into one batch. The renderer type-asserts back to
// its concrete texture when binding.
type Texture interface {
	TextureKey() uint64
}

// FontFace supplies glyph metrics and atlas UV regions. Layout treats it as
// a pure function of (rune, size); caching is the implementation's business.
type FontFace interface {
	// GlyphInfo returns metrics scaled to sizePx. UV is nil for whitespace.
	GlyphInfo(ch rune, sizePx float32) GlyphInfo
	// LineMetrics returns line metrics scaled to sizePx. Descent is negative.
	LineMetrics(sizePx float32) LineMetrics
	FontKey() uint64
	Atlas() Texture
}

// GlyphMetrics describes one glyph at a given pixel size. XMin/YMin are the
// bearing relative to the baseline (YMin negative below it).
type GlyphMetrics struct {
	XMin, YMin float32
	Width      float32
	Height     float32
	Advance    float32
}

func (m GlyphMetrics) Scale(f float32) GlyphMetrics {
	return GlyphMetrics{
		XMin:    m.XMin * f,
		YMin:    m.YMin * f,
		Width:   m.Width * f,
		Height:  m.Height * f,
		Advance: m.Advance * f,
	}
}

// GlyphInfo pairs metrics with the glyph's atlas region. UV == nil marks
// whitespace: it advances the cursor but emits no quad.
type GlyphInfo struct {
	Metrics GlyphMetrics
	UV      *Aabb
}

// LineMetrics for one face at one size. Descent is stored negative, so a
// line's total height is Ascent - Descent + LineGap.
type LineMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

var resourceKeys atomic.Uint64

// NextResourceKey hands out process-unique, nonzero resource keys. Textures
// and font faces grab one at construction; batching uses them to decide
// which consecutive primitives can share a draw call.
func NextResourceKey() uint64 { return resourceKeys.Add(1) }
