package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/sprig/engine/ui"
)

// UIRenderer draws ui.ElementBatches with four instanced pipelines: solid
// rects, textured rects, alpha-SDF rects and glyphs. Prepare uploads the
// instance arrays once per tree change; Render replays the batch list every
// frame.
type UIRenderer struct {
	quadVBO uint32

	rect     pipeline
	textured pipeline
	alphaSdf pipeline
	glyph    pipeline

	counts [4]int
}

type attrib struct {
	loc  uint32
	size int32 // components
}

type pipeline struct {
	program   uint32
	vao       uint32
	vbo       uint32 // instance buffer
	stride    int32
	attribs   []attrib
	uViewport int32
	uTex      int32
}

func NewUIRenderer() (*UIRenderer, error) {
	r := &UIRenderer{}

	// Unit quad as a triangle list; instances stretch it over their bounds.
	corners := []float32{0, 0, 1, 0, 0, 1, 1, 0, 1, 1, 0, 1}
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, gl.Ptr(corners), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	var err error
	r.rect, err = r.newPipeline(rectVS, rectFS, int32(unsafe.Sizeof(ui.RectInstance{})),
		[]attrib{{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 4}, {6, 4}})
	if err != nil {
		return nil, fmt.Errorf("rect pipeline: %w", err)
	}
	r.textured, err = r.newPipeline(texturedRectVS, texturedRectFS, int32(unsafe.Sizeof(ui.TexturedRectInstance{})),
		[]attrib{{1, 4}, {2, 4}, {3, 4}, {4, 4}, {5, 4}, {6, 4}, {7, 4}})
	if err != nil {
		return nil, fmt.Errorf("textured pipeline: %w", err)
	}
	r.alphaSdf, err = r.newPipeline(alphaSdfVS, alphaSdfFS, int32(unsafe.Sizeof(ui.AlphaSdfRectInstance{})),
		[]attrib{{1, 4}, {2, 4}, {3, 4}, {4, 4}})
	if err != nil {
		return nil, fmt.Errorf("alpha-sdf pipeline: %w", err)
	}
	r.glyph, err = r.newPipeline(glyphVS, glyphFS, int32(unsafe.Sizeof(ui.GlyphInstance{})),
		[]attrib{{1, 4}, {2, 4}, {3, 4}, {4, 1}})
	if err != nil {
		return nil, fmt.Errorf("glyph pipeline: %w", err)
	}
	return r, nil
}

func (r *UIRenderer) newPipeline(vs, fs string, stride int32, attribs []attrib) (pipeline, error) {
	var p pipeline
	var err error
	p.program, err = makeProgram(vs, fs)
	if err != nil {
		return p, err
	}
	p.stride = stride
	p.attribs = attribs
	p.uViewport = gl.GetUniformLocation(p.program, gl.Str("uViewport\x00"))
	p.uTex = gl.GetUniformLocation(p.program, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, unsafe.Pointer(uintptr(0)))

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	p.pointInstanceAttribs(0)
	for _, a := range p.attribs {
		gl.EnableVertexAttribArray(a.loc)
		gl.VertexAttribDivisor(a.loc, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return p, nil
}

// pointInstanceAttribs re-bases the instance attributes at a byte offset into
// the instance buffer. GL 3.3 has no base-instance draw call, so each batch
// repoints the attributes instead.
func (p *pipeline) pointInstanceAttribs(baseBytes int) {
	off := uintptr(baseBytes)
	for _, a := range p.attribs {
		gl.VertexAttribPointer(a.loc, a.size, gl.FLOAT, false, p.stride, unsafe.Pointer(off))
		off += uintptr(a.size) * 4
	}
}

// Prepare uploads the instance arrays. Call it when the element tree (or its
// layout) changed; Render alone is enough for frames in between.
func (r *UIRenderer) Prepare(b *ui.ElementBatches) {
	uploadInstances(r.rect.vbo, b.Rects)
	uploadInstances(r.textured.vbo, b.TexturedRects)
	uploadInstances(r.alphaSdf.vbo, b.AlphaSdfRects)
	uploadInstances(r.glyph.vbo, b.Glyphs)
	r.counts = [4]int{len(b.Rects), len(b.TexturedRects), len(b.AlphaSdfRects), len(b.Glyphs)}
}

func uploadInstances[T any](vbo uint32, instances []T) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(instances) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		size := len(instances) * int(unsafe.Sizeof(instances[0]))
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(instances), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the prepared batches. viewportW/H are the layout-space size
// the tree was laid out in, not pixels.
func (r *UIRenderer) Render(b *ui.ElementBatches, viewportW, viewportH float32) {
	for _, batch := range b.Batches {
		n := batch.End - batch.Start
		if n <= 0 {
			continue
		}

		var p *pipeline
		switch batch.Kind {
		case ui.BatchRects:
			p = &r.rect
		case ui.BatchTexturedRects:
			p = &r.textured
		case ui.BatchAlphaSdfRects:
			p = &r.alphaSdf
		case ui.BatchGlyphs:
			p = &r.glyph
		}
		if batch.End > r.counts[batch.Kind] {
			// Prepare was not called for this tree; skip rather than read
			// stale instances.
			continue
		}

		gl.UseProgram(p.program)
		gl.Uniform2f(p.uViewport, viewportW, viewportH)

		switch batch.Kind {
		case ui.BatchTexturedRects, ui.BatchAlphaSdfRects:
			if tex, ok := batch.Texture.(*Texture); ok {
				tex.Bind(0)
				gl.Uniform1i(p.uTex, 0)
			}
		case ui.BatchGlyphs:
			if tex, ok := batch.Font.Atlas().(*Texture); ok {
				tex.Bind(0)
				gl.Uniform1i(p.uTex, 0)
			}
		}

		gl.BindVertexArray(p.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
		p.pointInstanceAttribs(batch.Start * int(p.stride))
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(n))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
}

func (r *UIRenderer) Shutdown() {
	for _, p := range []*pipeline{&r.rect, &r.textured, &r.alphaSdf, &r.glyph} {
		if p.vbo != 0 {
			gl.DeleteBuffers(1, &p.vbo)
		}
		if p.vao != 0 {
			gl.DeleteVertexArrays(1, &p.vao)
		}
		if p.program != 0 {
			gl.DeleteProgram(p.program)
		}
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
}

// --- Shaders ---

// ndc() flips y: layout space grows downward.
const shaderCommonVS = `
vec4 ndc(vec2 pos, vec2 viewport) {
    return vec4(pos.x / viewport.x * 2.0 - 1.0, 1.0 - pos.y / viewport.y * 2.0, 0.0, 1.0);
}
`

const rectVS = `
#version 330 core
layout(location=0) in vec2 aCorner;
layout(location=1) in vec4 aBounds;
layout(location=2) in vec4 aColor;
layout(location=3) in vec4 aRadius;
layout(location=4) in vec4 aBorderColor;
layout(location=5) in vec4 aParams; // border width, softness, shadow width, shadow curve
layout(location=6) in vec4 aShadowColor;
uniform vec2 uViewport;
out vec2 vPos;
out vec2 vCenter;
out vec2 vHalfSize;
out vec4 vColor;
out vec4 vRadius;
out vec4 vBorderColor;
out vec4 vParams;
out vec4 vShadowColor;
` + shaderCommonVS + `
void main() {
    // Grow the quad so the shadow and the soft edge have room to fall off.
    vec2 pad = vec2(aParams.z + aParams.y + 1.0);
    vec2 pos = mix(aBounds.xy - pad, aBounds.zw + pad, aCorner);
    vPos = pos;
    vCenter = (aBounds.xy + aBounds.zw) * 0.5;
    vHalfSize = (aBounds.zw - aBounds.xy) * 0.5;
    vColor = aColor;
    vRadius = aRadius;
    vBorderColor = aBorderColor;
    vParams = aParams;
    vShadowColor = aShadowColor;
    gl_Position = ndc(pos, uViewport);
}
` + "\x00"

const shaderRoundBox = `
// radius: x=top-left, y=top-right, z=bottom-right, w=bottom-left
float sdRoundBox(vec2 p, vec2 halfSize, vec4 radius) {
    float r = (p.x < 0.0) ? ((p.y < 0.0) ? radius.x : radius.w)
                          : ((p.y < 0.0) ? radius.y : radius.z);
    vec2 q = abs(p) - halfSize + r;
    return min(max(q.x, q.y), 0.0) + length(max(q, 0.0)) - r;
}
`

const rectFS = `
#version 330 core
in vec2 vPos;
in vec2 vCenter;
in vec2 vHalfSize;
in vec4 vColor;
in vec4 vRadius;
in vec4 vBorderColor;
in vec4 vParams;
in vec4 vShadowColor;
out vec4 FragColor;
` + shaderRoundBox + `
void main() {
    float d = sdRoundBox(vPos - vCenter, vHalfSize, vRadius);
    float aa = max(vParams.y, 0.75);

    float fill = 1.0 - smoothstep(-aa, aa, d + vParams.x);
    float edge = 1.0 - smoothstep(-aa, aa, d);
    float border = edge - fill;

    float shadow = 0.0;
    if (vParams.z > 0.0 && d > 0.0) {
        shadow = 1.0 - clamp(d / vParams.z, 0.0, 1.0);
        shadow = pow(shadow, max(vParams.w, 1.0));
    }

    vec4 col = vColor * fill + vBorderColor * border;
    col += vShadowColor * (shadow * (1.0 - edge));
    FragColor = col;
}
` + "\x00"

const texturedRectVS = `
#version 330 core
layout(location=0) in vec2 aCorner;
layout(location=1) in vec4 aBounds;
layout(location=2) in vec4 aColor;
layout(location=3) in vec4 aRadius;
layout(location=4) in vec4 aBorderColor;
layout(location=5) in vec4 aParams;
layout(location=6) in vec4 aShadowColor;
layout(location=7) in vec4 aUV;
uniform vec2 uViewport;
out vec2 vPos;
out vec2 vCenter;
out vec2 vHalfSize;
out vec4 vColor;
out vec4 vRadius;
out vec4 vBorderColor;
out vec4 vParams;
out vec2 vUV;
` + shaderCommonVS + `
void main() {
    vec2 pos = mix(aBounds.xy, aBounds.zw, aCorner);
    vPos = pos;
    vCenter = (aBounds.xy + aBounds.zw) * 0.5;
    vHalfSize = (aBounds.zw - aBounds.xy) * 0.5;
    vColor = aColor;
    vRadius = aRadius;
    vBorderColor = aBorderColor;
    vParams = aParams;
    vUV = mix(aUV.xy, aUV.zw, aCorner);
    gl_Position = ndc(pos, uViewport);
}
` + "\x00"

const texturedRectFS = `
#version 330 core
in vec2 vPos;
in vec2 vCenter;
in vec2 vHalfSize;
in vec4 vColor;
in vec4 vRadius;
in vec4 vBorderColor;
in vec4 vParams;
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D uTex;
` + shaderRoundBox + `
void main() {
    float d = sdRoundBox(vPos - vCenter, vHalfSize, vRadius);
    float aa = max(vParams.y, 0.75);

    float fill = 1.0 - smoothstep(-aa, aa, d + vParams.x);
    float edge = 1.0 - smoothstep(-aa, aa, d);
    float border = edge - fill;

    vec4 texel = texture(uTex, vUV);
    FragColor = texel * vColor * fill + vBorderColor * border;
}
` + "\x00"

const alphaSdfVS = `
#version 330 core
layout(location=0) in vec2 aCorner;
layout(location=1) in vec4 aBounds;
layout(location=2) in vec4 aColor;
layout(location=3) in vec4 aParams; // in/border cutoff+smooth, border/out cutoff+smooth
layout(location=4) in vec4 aUV;
uniform vec2 uViewport;
out vec4 vColor;
out vec4 vParams;
out vec2 vUV;
` + shaderCommonVS + `
void main() {
    vec2 pos = mix(aBounds.xy, aBounds.zw, aCorner);
    vColor = aColor;
    vParams = aParams;
    vUV = mix(aUV.xy, aUV.zw, aCorner);
    gl_Position = ndc(pos, uViewport);
}
` + "\x00"

const alphaSdfFS = `
#version 330 core
in vec4 vColor;
in vec4 vParams;
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D uTex;
void main() {
    float d = texture(uTex, vUV).a;
    // Full color above the inner cutoff, darkened rim between the two
    // cutoffs, transparent outside.
    float inner = smoothstep(vParams.x - vParams.y, vParams.x + vParams.y, d);
    float outer = smoothstep(vParams.z - vParams.w, vParams.z + vParams.w, d);
    vec3 rgb = vColor.rgb * mix(0.35, 1.0, inner);
    FragColor = vec4(rgb, vColor.a * outer);
}
` + "\x00"

const glyphVS = `
#version 330 core
layout(location=0) in vec2 aCorner;
layout(location=1) in vec4 aBounds;
layout(location=2) in vec4 aColor;
layout(location=3) in vec4 aUV;
layout(location=4) in float aShadow;
uniform vec2 uViewport;
out vec4 vColor;
out vec2 vUV;
out float vShadow;
` + shaderCommonVS + `
void main() {
    vec2 pos = mix(aBounds.xy, aBounds.zw, aCorner);
    vColor = aColor;
    vUV = mix(aUV.xy, aUV.zw, aCorner);
    vShadow = aShadow;
    gl_Position = ndc(pos, uViewport);
}
` + "\x00"

const glyphFS = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
in float vShadow;
out vec4 FragColor;
uniform sampler2D uTex;
void main() {
    float d = texture(uTex, vUV).r;
    float w = max(fwidth(d), 0.01);
    float a = smoothstep(0.5 - w, 0.5 + w, d);
    // Optional dark halo behind the glyph for readability on busy
    // backgrounds.
    float halo = smoothstep(0.3, 0.5, d) * vShadow;
    float alpha = a * vColor.a + halo * (1.0 - a);
    // The halo part of the coverage is black; weight the rgb accordingly.
    vec3 rgb = vColor.rgb * (a * vColor.a) / max(alpha, 0.0001);
    FragColor = vec4(rgb, alpha);
}
` + "\x00"
