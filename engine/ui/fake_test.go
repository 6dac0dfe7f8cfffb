package ui

// fakeTexture satisfies Texture with a fixed key.
type fakeTexture struct {
	key uint64
}

func (t *fakeTexture) TextureKey() uint64 { return t.key }

// fakeFont is a monospace face: every printable rune is 8x8 with a 10px
// advance, whitespace advances without a quad. Metrics ignore the requested
// size so test expectations stay in round numbers.
type fakeFont struct {
	key   uint64
	atlas fakeTexture
}

func newFakeFont(key uint64) *fakeFont {
	return &fakeFont{key: key, atlas: fakeTexture{key: key + 1000}}
}

func (f *fakeFont) GlyphInfo(ch rune, sizePx float32) GlyphInfo {
	m := GlyphMetrics{XMin: 1, YMin: -2, Width: 8, Height: 8, Advance: 10}
	if ch == ' ' || ch == '\t' {
		return GlyphInfo{Metrics: GlyphMetrics{Advance: 10}}
	}
	uv := Aabb{MinX: 0, MinY: 0, MaxX: 0.1, MaxY: 0.1}
	return GlyphInfo{Metrics: m, UV: &uv}
}

func (f *fakeFont) LineMetrics(sizePx float32) LineMetrics {
	return LineMetrics{Ascent: 10, Descent: -2, LineGap: 1}
}

func (f *fakeFont) FontKey() uint64 { return f.key }

func (f *fakeFont) Atlas() Texture { return &f.atlas }
