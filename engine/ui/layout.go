package ui

import "math"

// BoundsVisitor observes the bounds of every identified element during the
// position pass. Children are visited before their parents, so a
// front-to-back scan of the visited list finds the deepest element first.
type BoundsVisitor interface {
	Visit(id ID, bounds Bounds)
}

// Unbounded is the max size for layout without outer constraints.
var Unbounded = Vec2{X: math.MaxFloat64, Y: math.MaxFloat64}

// Layout lays the element out without outer constraints at origin zero.
func (e ElementBox) Layout(v BoundsVisitor) {
	e.LayoutIn(Unbounded, Vec2{}, v)
}

// LayoutIn runs the two layout passes: bottom-up size resolution against
// max, then top-down positioning starting at offset. Computed records of
// the whole tree are overwritten.
func (e ElementBox) LayoutIn(max Vec2, offset Vec2, v BoundsVisitor) {
	e.resolveSize(max)
	e.place(offset, v)
}

// LayoutRelativeToOwnSize sizes the element unconstrained and then places it
// at -ownSize*unitPos + offset, e.g. unitPos (0.5,0.5) centers it on offset.
func (e ElementBox) LayoutRelativeToOwnSize(unitPos Vec2, offset Vec2, v BoundsVisitor) {
	size := e.resolveSize(Unbounded)
	e.place(Vec2{X: offset.X - size.X*unitPos.X, Y: offset.Y - size.Y*unitPos.Y}, v)
}

// ----- pass 1: sizes, bottom-up -----

func (e ElementBox) resolveSize(max Vec2) Vec2 {
	n := e.mustNode()
	switch n.kind {
	case kindBox:
		return e.store.boxResolveSize(n, max)
	default:
		n.textC = e.store.flowText(&n.text, float32(max.X))
		return n.textC.Bounds.Size
	}
}

func (s *Store) boxResolveSize(n *node, max Vec2) Vec2 {
	b := &n.box
	padX := b.Padding.x()
	padY := b.Padding.y()

	size := &n.boxC.Bounds.Size
	content := &n.boxC.ContentSize

	wFixed := !b.Width.IsAuto()
	hFixed := !b.Height.IsAuto()
	width := b.Width.resolve(max.X)
	height := b.Height.resolve(max.Y)

	switch {
	case wFixed && hFixed:
		*size = Vec2{X: width, Y: height}
		*content = s.boxResolveChildren(b, size.Sub(Vec2{X: padX, Y: padY}))
	case wFixed:
		*content = s.boxResolveChildren(b, Vec2{X: width - padX, Y: max.Y})
		*size = Vec2{X: width, Y: content.Y + padY}
	case hFixed:
		*content = s.boxResolveChildren(b, Vec2{X: max.X, Y: height - padY})
		*size = Vec2{X: content.X + padX, Y: height}
	default:
		*content = s.boxResolveChildren(b, max)
		*size = Vec2{X: content.X + padX, Y: content.Y + padY}
	}
	return *size
}

// boxResolveChildren sizes every child against max and returns the space the
// in-flow children take together: a sum along the box's axis, a max across
// it. Absolute children are sized but never accumulated, so they cannot grow
// an auto-sized parent. Gap widens the accumulation unless a space-
// distributing alignment owns the free space instead.
func (s *Store) boxResolveChildren(b *Box, max Vec2) Vec2 {
	var all Vec2
	gap := b.Gap
	if b.MainAlign == MainSpaceBetween || b.MainAlign == MainSpaceAround {
		gap = 0
	}
	inFlow := 0
	for i := range b.Children {
		ch := b.Children[i]
		chSize := ch.resolveSize(max)
		if isAbsolute(ch) {
			continue
		}
		if b.Axis == AxisX {
			all.X += chSize.X
			all.Y = maxf(all.Y, chSize.Y)
		} else {
			all.X = maxf(all.X, chSize.X)
			all.Y += chSize.Y
		}
		inFlow++
	}
	if inFlow > 1 {
		if b.Axis == AxisX {
			all.X += gap * float64(inFlow-1)
		} else {
			all.Y += gap * float64(inFlow-1)
		}
	}
	return all
}

func isAbsolute(e ElementBox) bool {
	n := e.mustNode()
	return n.kind == kindBox && n.box.Absolute
}

// ----- pass 2: positions, top-down -----

func (e ElementBox) place(pos Vec2, v BoundsVisitor) {
	n := e.mustNode()
	switch n.kind {
	case kindBox:
		n.boxC.Bounds.Pos = pos.Add(n.box.Offset)
		e.store.boxPlaceChildren(n, v)
	default:
		n.textC.Bounds.Pos = pos.Add(n.text.Offset)
		e.store.textPlaceSections(n, v)
	}
	if !n.id.IsNone() && v != nil {
		v.Visit(n.id, *n.bounds())
	}
}

// axisView splits vectors into (main, cross) components for one axis so the
// placement loop is written once.
type axisView struct{ mainIsX bool }

func (a axisView) split(v Vec2) (main, cross float64) {
	if a.mainIsX {
		return v.X, v.Y
	}
	return v.Y, v.X
}

func (a axisView) join(main, cross float64) Vec2 {
	if a.mainIsX {
		return Vec2{X: main, Y: cross}
	}
	return Vec2{X: cross, Y: main}
}

func (s *Store) boxPlaceChildren(n *node, v BoundsVisitor) {
	b := &n.box
	if len(b.Children) == 0 {
		return
	}

	inner := Vec2{
		X: n.boxC.Bounds.Size.X - b.Padding.x(),
		Y: n.boxC.Bounds.Size.Y - b.Padding.y(),
	}
	innerPos := n.boxC.Bounds.Pos.Add(Vec2{X: b.Padding.Left, Y: b.Padding.Top})

	ax := axisView{mainIsX: b.Axis == AxisX}
	mainSize, crossSize := ax.split(inner)
	mainContent, _ := ax.split(n.boxC.ContentSize)

	offset, step := mainOffsetAndStep(b.MainAlign, b.Gap, mainSize, mainContent, len(b.Children))

	for _, ch := range b.Children {
		chn := ch.mustNode()
		chSize := chn.bounds().Size
		chMain, chCross := ax.split(chSize)

		if chn.kind == kindBox && chn.box.Absolute {
			rel := inner.Sub(chSize).Mul(chn.box.Anchor)
			ch.place(rel.Add(innerPos), v)
			continue
		}

		var cross float64
		switch b.CrossAlign {
		case AlignCenter:
			cross = (crossSize - chCross) * 0.5
		case AlignEnd:
			cross = crossSize - chCross
		}

		ch.place(ax.join(offset, cross).Add(innerPos), v)
		offset += chMain + step
	}
}

// mainOffsetAndStep computes the lead offset before the first in-flow child
// and the extra advance inserted after each child, for the given main-axis
// alignment. n counts all children, absolute ones included, even though only
// in-flow children consume the step. Gap applies as an additive step except
// under the space-distributing alignments, which own the free space.
func mainOffsetAndStep(align MainAlign, gap, mainSize, mainContent float64, n int) (offset, step float64) {
	free := mainSize - mainContent
	switch align {
	case MainCenter:
		return free * 0.5, gap
	case MainEnd:
		return free, gap
	case MainSpaceBetween:
		if n <= 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case MainSpaceAround:
		if n == 0 {
			return 0, 0
		}
		step = free / float64(n)
		return step / 2, step
	default:
		return 0, gap
	}
}

func (s *Store) textPlaceSections(n *node, v BoundsVisitor) {
	pos := n.textC.Bounds.Pos

	// Inline elements carry their in-text relative position, assigned by the
	// flow pass, in their computed bounds.
	for _, sec := range n.text.Sections {
		inl, ok := sec.(*Inline)
		if !ok {
			continue
		}
		rel := inl.Element.mustNode().bounds().Pos
		inl.Element.place(pos.Add(rel), v)
	}

	for i := range n.textC.Glyphs {
		g := &n.textC.Glyphs[i]
		g.Bounds.X += float32(pos.X)
		g.Bounds.Y += float32(pos.Y)
	}
}
