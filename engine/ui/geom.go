package ui

// Layout math runs in float64 "layout units"; the GPU-facing records in
// batching.go are float32.

type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Bounds is a resolved pixel rectangle in layout space.
type Bounds struct {
	Pos  Vec2
	Size Vec2
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Pos.X && p.Y >= b.Pos.Y &&
		p.X <= b.Pos.X+b.Size.X && p.Y <= b.Pos.Y+b.Size.Y
}

// Rect is a float32 position+size rectangle (glyph quads).
type Rect struct {
	X, Y, W, H float32
}

// Aabb is a float32 min/max rectangle. Used both for atlas UV regions and
// for instance bounds on the wire to the renderer.
type Aabb struct {
	MinX, MinY, MaxX, MaxY float32
}

func AabbFromRect(r Rect) Aabb {
	return Aabb{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

func boundsToAabb(b Bounds) Aabb {
	return Aabb{
		MinX: float32(b.Pos.X),
		MinY: float32(b.Pos.Y),
		MaxX: float32(b.Pos.X + b.Size.X),
		MaxY: float32(b.Pos.Y + b.Size.Y),
	}
}

// Scale multiplies all four corners, e.g. to shrink a unit UV region.
func (a Aabb) Scale(f float32) Aabb {
	return Aabb{MinX: a.MinX * f, MinY: a.MinY * f, MaxX: a.MaxX * f, MaxY: a.MaxY * f}
}

// UVFromPixels converts a pixel rectangle inside an atlas of the given size
// to a normalized UV region.
func UVFromPixels(x, y, w, h, atlasW, atlasH int) Aabb {
	return Aabb{
		MinX: float32(x) / float32(atlasW),
		MinY: float32(y) / float32(atlasH),
		MaxX: float32(x+w) / float32(atlasW),
		MaxY: float32(y+h) / float32(atlasH),
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
