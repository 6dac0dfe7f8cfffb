package glbackend

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/sprig/engine/ui"
)

// Texture is a GPU texture carrying a process-unique key for draw batching.
// It implements ui.Texture.
type Texture struct {
	handle uint32
	key    uint64
	w, h   int
}

func (t *Texture) TextureKey() uint64 { return t.key }

func (t *Texture) Size() (int, int) { return t.w, t.h }

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
}

func (t *Texture) Delete() {
	if t.handle != 0 {
		gl.DeleteTextures(1, &t.handle)
		t.handle = 0
	}
}

// NewTextureRGBA uploads an RGBA image with linear filtering.
func NewTextureRGBA(img *image.RGBA) (*Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride != w*4 {
		return nil, fmt.Errorf("gl: rgba texture stride %d != width*4", img.Stride)
	}
	t := newTexture(w, h)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return t, nil
}

// NewTextureGray uploads a single-channel image as R8, e.g. an SDF font
// atlas.
func NewTextureGray(img *image.Gray) (*Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride != w {
		return nil, fmt.Errorf("gl: gray texture stride %d != width", img.Stride)
	}
	t := newTexture(w, h)
	// Single-channel rows are rarely 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(w), int32(h), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	return t, nil
}

// UpdateGray re-uploads a gray image into an existing texture, e.g. after a
// font atlas gained glyphs.
func (t *Texture) UpdateGray(img *image.Gray) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w != t.w || h != t.h {
		return fmt.Errorf("gl: update size %dx%d != texture %dx%d", w, h, t.w, t.h)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	return nil
}

func newTexture(w, h int) *Texture {
	t := &Texture{key: ui.NextResourceKey(), w: w, h: h}
	gl.GenTextures(1, &t.handle)
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return t
}
