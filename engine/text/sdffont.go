package text

import (
	"errors"
	"fmt"
	"image"
	"math"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hubastard/sprig/engine/ui"
)

// BaseSizePx is the size glyphs are rasterized at. Queries for other sizes
// scale the stored metrics; the distance field keeps edges crisp well below
// and somewhat above the base size.
const BaseSizePx = 64

// DefaultAtlasSize is the side of the single-channel atlas texture.
const DefaultAtlasSize = 1024

// ErrAtlasFull is returned when no shelf has room for another glyph.
var ErrAtlasFull = errors.New("text: font atlas full")

type glyphEntry struct {
	metrics ui.GlyphMetrics
	uv      *ui.Aabb // nil for whitespace
}

// SDFFont rasterizes glyphs at a fixed base size, converts the coverage to a
// signed distance field and shelf-packs the result into one grayscale atlas.
// It implements ui.FontFace.
type SDFFont struct {
	face    font.Face
	ascent  float32
	descent float32 // negative below the baseline
	lineGap float32

	pad    int
	atlas  *image.Gray
	shelfX int
	shelfY int
	rowH   int

	glyphs  map[rune]glyphEntry
	key     uint64
	texture ui.Texture
	dirty   bool
}

// NewSDFFont parses TTF/OTF data and preloads the printable ASCII range.
// Upload the atlas image and call SetTexture before drawing with the font.
func NewSDFFont(ttfData []byte) (*SDFFont, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: BaseSizePx, DPI: 72, Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := -float32(m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	f := &SDFFont{
		face:    face,
		ascent:  ascent,
		descent: descent,
		lineGap: lineGap,
		pad:     BaseSizePx / 8,
		atlas:   image.NewGray(image.Rect(0, 0, DefaultAtlasSize, DefaultAtlasSize)),
		glyphs:  make(map[rune]glyphEntry, 96),
		key:     ui.NextResourceKey(),
	}
	for r := rune(' '); r <= '~'; r++ {
		if err := f.AddRune(r); err != nil {
			return nil, fmt.Errorf("preload %q: %w", r, err)
		}
	}
	return f, nil
}

// AddRune rasterizes one glyph into the atlas. Adding an already present
// rune is a no-op. After adding runes the atlas is dirty and must be
// re-uploaded.
func (f *SDFFont) AddRune(r rune) error {
	if _, ok := f.glyphs[r]; ok {
		return nil
	}

	br, adv, ok := f.face.GlyphBounds(r)
	if !ok {
		if unicode.IsSpace(r) {
			// Whitespace the face has no glyph for (tab, NBSP) still
			// advances the pen; borrow the space advance rather than fall
			// back to a drawable glyph.
			f.glyphs[r] = glyphEntry{metrics: ui.GlyphMetrics{Advance: f.glyphs[' '].metrics.Advance}}
			return nil
		}
		return fmt.Errorf("text: no glyph for %q", r)
	}
	w := (br.Max.X - br.Min.X).Ceil()
	h := (br.Max.Y - br.Min.Y).Ceil()
	advance := float32(adv.Round())
	bearingX := float32(br.Min.X.Floor())
	top := float32(-br.Min.Y.Ceil()) // distance baseline to glyph top

	if w == 0 || h == 0 {
		// Whitespace advances the pen but has nothing to draw.
		f.glyphs[r] = glyphEntry{metrics: ui.GlyphMetrics{Advance: advance}}
		return nil
	}

	mask := f.renderCoverage(r, w, h, bearingX, top)
	field := distanceField(mask, w, h, f.pad)

	pw := w + 2*f.pad
	ph := h + 2*f.pad
	x, y, err := f.pack(pw, ph)
	if err != nil {
		return err
	}
	for row := 0; row < ph; row++ {
		copy(f.atlas.Pix[(y+row)*f.atlas.Stride+x:], field[row*pw:(row+1)*pw])
	}
	f.dirty = true

	size := float32(f.atlas.Rect.Dx())
	uv := ui.Aabb{
		MinX: float32(x) / size,
		MinY: float32(y) / size,
		MaxX: float32(x+pw) / size,
		MaxY: float32(y+ph) / size,
	}
	f.glyphs[r] = glyphEntry{
		metrics: ui.GlyphMetrics{
			XMin:    bearingX - float32(f.pad),
			YMin:    top - float32(h) - float32(f.pad),
			Width:   float32(pw),
			Height:  float32(ph),
			Advance: advance,
		},
		uv: &uv,
	}
	return nil
}

func (f *SDFFont) renderCoverage(r rune, w, h int, bearingX, top float32) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.P(-int(bearingX), int(top)),
	}
	d.DrawString(string(r))
	return mask
}

func (f *SDFFont) pack(w, h int) (int, int, error) {
	size := f.atlas.Rect.Dx()
	if f.shelfX+w > size {
		f.shelfX = 0
		f.shelfY += f.rowH
		f.rowH = 0
	}
	if f.shelfY+h > size || w > size {
		return 0, 0, ErrAtlasFull
	}
	x, y := f.shelfX, f.shelfY
	f.shelfX += w
	if h > f.rowH {
		f.rowH = h
	}
	return x, y, nil
}

// distanceField converts a coverage mask to an SDF padded by pad on every
// side: 0.5 on the outline, 1.0 at pad pixels inside, 0.0 at pad outside.
func distanceField(mask *image.Gray, w, h, pad int) []byte {
	pw := w + 2*pad
	ph := h + 2*pad
	out := make([]byte, pw*ph)

	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.Pix[y*mask.Stride+x] >= 128
	}

	maxDist := float64(pad)
	for oy := 0; oy < ph; oy++ {
		for ox := 0; ox < pw; ox++ {
			px, py := ox-pad, oy-pad
			in := inside(px, py)

			// Nearest pixel of the opposite set within the pad radius.
			best := maxDist
			for dy := -pad; dy <= pad; dy++ {
				for dx := -pad; dx <= pad; dx++ {
					if inside(px+dx, py+dy) == in {
						continue
					}
					if d := math.Hypot(float64(dx), float64(dy)); d < best {
						best = d
					}
				}
			}

			signed := best
			if !in {
				signed = -best
			}
			v := 0.5 + signed/(2*maxDist)
			out[oy*pw+ox] = byte(math.Round(clamp01(v) * 255))
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GlyphInfo returns the glyph scaled from the base rasterization size to
// sizePx. Unknown runes are added on demand; if that fails, the glyph of
// '?' stands in. Whitespace never gets the fallback: it stays advance-only.
func (f *SDFFont) GlyphInfo(r rune, sizePx float32) ui.GlyphInfo {
	g, ok := f.glyphs[r]
	if !ok {
		if err := f.AddRune(r); err != nil {
			g = f.glyphs['?']
		} else {
			g = f.glyphs[r]
		}
	}
	return ui.GlyphInfo{
		Metrics: g.metrics.Scale(sizePx / BaseSizePx),
		UV:      g.uv,
	}
}

func (f *SDFFont) LineMetrics(sizePx float32) ui.LineMetrics {
	s := sizePx / BaseSizePx
	return ui.LineMetrics{
		Ascent:  f.ascent * s,
		Descent: f.descent * s,
		LineGap: f.lineGap * s,
	}
}

func (f *SDFFont) FontKey() uint64 { return f.key }

// Atlas returns the uploaded atlas texture, nil until SetTexture is called.
func (f *SDFFont) Atlas() ui.Texture { return f.texture }

// SetTexture binds the GPU copy of the atlas image to the font.
func (f *SDFFont) SetTexture(t ui.Texture) { f.texture = t }

// AtlasImage is the CPU-side atlas, a single gray channel.
func (f *SDFFont) AtlasImage() *image.Gray { return f.atlas }

// Dirty reports whether glyphs were added since the last MarkUploaded.
func (f *SDFFont) Dirty() bool { return f.dirty }

func (f *SDFFont) MarkUploaded() { f.dirty = false }

func (f *SDFFont) Close() error { return f.face.Close() }
