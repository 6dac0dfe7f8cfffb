package ui

import (
	"math"
	"unicode"
)

// minWrapWidth is the floor applied to the wrap width so the line-break loop
// always terminates. Narrower requests are clamped and reported as a
// LayoutWarning.
const minWrapWidth = 1.0

type lineRun struct {
	baselineY float32
	// advance is the x cursor where the next glyph would be placed.
	advance float32
	metrics LineMetrics
	glyphs  GlyphRange
}

func (l *lineRun) mergeMetrics(m LineMetrics) {
	l.metrics.Ascent = max32(l.metrics.Ascent, m.Ascent)
	l.metrics.Descent = min32(l.metrics.Descent, m.Descent) // min: descent is negative
	l.metrics.LineGap = max32(l.metrics.LineGap, m.LineGap)
}

// xOffsetAdvance remembers how a glyph was placed so a trailing word can be
// re-based onto the next line with relative offsets intact.
type xOffsetAdvance struct {
	offset  float32
	advance float32
}

type textFlow struct {
	store    *Store
	maxWidth float32

	glyphs    []GlyphQuad
	runGlyphs []GlyphRange
	lines     []lineRun
	current   lineRun
	// word holds the glyphs placed since the last whitespace; on an
	// overflow break they move to the new line as one unit.
	word      []xOffsetAdvance
	elemLines []int
}

func (s *Store) flowText(t *Text, maxWidth float32) TextComputed {
	if math.IsNaN(float64(maxWidth)) || maxWidth < minWrapWidth {
		s.warnf("ui: text wrap width %v clamped to %v", maxWidth, minWrapWidth)
		maxWidth = minWrapWidth
	}
	f := &textFlow{store: s, maxWidth: maxWidth}
	for _, sec := range t.Sections {
		switch sec := sec.(type) {
		case *TextRun:
			f.flowRun(sec)
		case *Inline:
			f.flowInline(sec)
		}
	}
	return f.finalize(t)
}

func (f *textFlow) flowRun(run *TextRun) {
	runStart := len(f.glyphs)

	lm := run.Font.LineMetrics(run.FontSize)
	f.current.mergeMetrics(lm)

	for _, ch := range run.Text {
		if ch == '\n' {
			f.breakLine(lm)
			continue
		}
		g := run.Font.GlyphInfo(ch, run.FontSize)

		if f.current.advance+g.Metrics.Advance > f.maxWidth {
			f.breakLine(lm)
			if unicode.IsSpace(ch) {
				// The overflowing whitespace is dropped so lines never
				// start or end with stray blanks.
				f.word = f.word[:0]
			} else {
				f.carryWordBack()
				f.addGlyph(g, ch)
			}
		} else {
			f.addGlyph(g, ch)
		}
	}

	f.runGlyphs = append(f.runGlyphs, GlyphRange{Start: runStart, End: len(f.glyphs)})
}

// carryWordBack moves the trailing non-whitespace glyphs of the line that
// just ended onto the fresh current line, preserving their relative x
// offsets, so a word is never split across a line boundary.
func (f *textFlow) carryWordBack() {
	lastN := len(f.word)
	if lastN == 0 {
		return
	}
	glyphsN := len(f.glyphs)
	lastLine := &f.lines[len(f.lines)-1]
	lastLine.glyphs.End -= lastN
	f.current.glyphs.Start -= lastN

	for i, wa := range f.word {
		g := &f.glyphs[glyphsN-lastN+i]
		g.Bounds.X = f.current.advance + wa.offset
		f.current.advance += wa.advance
	}
	// The word buffer intentionally stays: a word longer than the wrap
	// width keeps carrying on every overflow.
}

// addGlyph places a glyph at the current advance. Whitespace advances the
// cursor and resets the word tracking but emits no quad (it has no UV).
func (f *textFlow) addGlyph(g GlyphInfo, ch rune) {
	if g.UV != nil {
		xOff := g.Metrics.XMin
		yOff := -g.Metrics.YMin // y axis points down
		f.glyphs = append(f.glyphs, GlyphQuad{
			Bounds: Rect{
				X: f.current.advance + xOff,
				Y: -g.Metrics.Height + yOff,
				W: g.Metrics.Width,
				H: g.Metrics.Height,
			},
			UV: *g.UV,
		})
		f.word = append(f.word, xOffsetAdvance{offset: xOff, advance: g.Metrics.Advance})
	} else {
		f.word = f.word[:0]
	}
	f.current.advance += g.Metrics.Advance
}

func (f *textFlow) breakLine(metrics LineMetrics) {
	f.current.glyphs.End = len(f.glyphs)
	old := f.current
	f.current = lineRun{
		metrics: metrics,
		glyphs:  GlyphRange{Start: len(f.glyphs), End: len(f.glyphs)},
	}
	f.lines = append(f.lines, old)
}

// flowInline sizes an embedded element against the wrap width and reserves
// its advance on the current line. Only its x is known now; y waits until
// line heights are final.
func (f *textFlow) flowInline(inl *Inline) {
	size := inl.Element.resolveSize(Vec2{X: float64(f.maxWidth), Y: math.MaxFloat64})
	if f.current.advance+float32(size.X) > f.maxWidth {
		f.breakLine(LineMetrics{})
	}
	inl.Element.mustNode().bounds().Pos.X = float64(f.current.advance)
	f.current.advance += float32(size.X)
	f.elemLines = append(f.elemLines, len(f.lines))

	if inl.SetsLineHeight {
		f.current.metrics.Ascent = max32(f.current.metrics.Ascent, float32(size.Y))
	}
}

func (f *textFlow) finalize(t *Text) TextComputed {
	f.current.glyphs.End = len(f.glyphs)
	f.lines = append(f.lines, f.current)

	var baseY, maxLineWidth float32
	last := len(f.lines) - 1
	for i := range f.lines {
		line := &f.lines[i]
		baseY += line.metrics.Ascent
		line.baselineY = baseY

		maxLineWidth = max32(maxLineWidth, line.advance)

		for j := line.glyphs.Start; j < line.glyphs.End; j++ {
			f.glyphs[j].Bounds.Y += baseY
		}
		baseY += -line.metrics.Descent + line.metrics.LineGap
		if i < last {
			baseY += t.ExtraLineGap
		}
	}

	// Inline elements sit on the line's bottom edge (baseline minus the
	// negative descent), bottom-aligned.
	elem := 0
	for _, sec := range t.Sections {
		inl, ok := sec.(*Inline)
		if !ok {
			continue
		}
		line := &f.lines[f.elemLines[elem]]
		bottom := line.baselineY - line.metrics.Descent
		b := inl.Element.mustNode().bounds()
		b.Pos.Y = float64(bottom) - b.Size.Y
		elem++
	}

	return TextComputed{
		Bounds:    Bounds{Size: Vec2{X: float64(maxLineWidth), Y: float64(baseY)}},
		RunGlyphs: f.runGlyphs,
		Glyphs:    f.glyphs,
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
