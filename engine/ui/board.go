package ui

// Board owns one element tree and keeps its layout, hit-test bounds and draw
// batches in sync. The tree is rebuilt by the caller whenever its content
// changes; between rebuilds the board serves the retained results.
type Board struct {
	ctx       ElementContext
	size      Vec2
	posOffset Vec2
	element   ElementBox
	batches   ElementBatches
}

// NewBoard lays out element into a board of the given size. The board takes
// ownership of the element tree and releases it when replaced.
func NewBoard(element ElementBox, size Vec2) *Board {
	b := &Board{size: size}
	b.SetElement(element)
	return b
}

// SetElement swaps in a freshly built tree, releasing the previous one, and
// recomputes layout and batches.
func (b *Board) SetElement(element ElementBox) {
	if !b.element.IsZero() {
		b.element.Release()
	}
	b.element = element
	b.relayout()
}

// Resize changes the layout space and re-lays-out the current tree.
func (b *Board) Resize(size Vec2) {
	if size == b.size {
		return
	}
	b.size = size
	b.relayout()
}

// ResizeFixedHeight keeps the layout height constant and derives the width
// from the window's aspect ratio, so the UI scales with the window instead
// of reflowing.
func (b *Board) ResizeFixedHeight(screenWidthPx, screenHeightPx int) {
	if screenHeightPx <= 0 {
		return
	}
	w := float64(screenWidthPx) / float64(screenHeightPx) * b.size.Y
	b.Resize(Vec2{X: w, Y: b.size.Y})
}

// SetPosOffset shifts where the tree is placed inside the layout space.
func (b *Board) SetPosOffset(offset Vec2) {
	if offset == b.posOffset {
		return
	}
	b.posOffset = offset
	b.relayout()
}

func (b *Board) relayout() {
	if b.element.IsZero() {
		return
	}
	b.element.store.ResetWarnings()
	b.ctx.ClearIDBounds()
	b.element.LayoutIn(b.size, b.posOffset, &b.ctx)
	b.batches = b.element.Batches()
}

// StartFrame advances pointer interaction for this frame. cursor is in
// layout space.
func (b *Board) StartFrame(cursor Vec2, mouseDown bool) {
	b.ctx.StartFrame(cursor, mouseDown)
}

// StartFrameFixedHeight is StartFrame for boards sized with
// ResizeFixedHeight: it converts a cursor in screen pixels to layout space.
func (b *Board) StartFrameFixedHeight(cursorPx Vec2, mouseDown bool, screenHeightPx float64) {
	b.ctx.StartFrameFixedHeight(cursorPx, mouseDown, b.size.Y, screenHeightPx)
}

// Interaction reports how the identified element relates to the pointer this
// frame.
func (b *Board) Interaction(id ID) Interaction { return b.ctx.Interaction(id) }

// HoveredElement returns the innermost identified element under the point.
func (b *Board) HoveredElement(cursor Vec2) ID { return b.ctx.HoveredElement(cursor) }

// Element is the current root. It stays valid until the next SetElement.
func (b *Board) Element() ElementBox { return b.element }

// Batches is the draw-ready form of the current tree.
func (b *Board) Batches() *ElementBatches { return &b.batches }

// Size is the current layout-space size.
func (b *Board) Size() Vec2 { return b.size }

// Warnings reports layout problems from the most recent relayout, such as a
// text wrap width clamped to its minimum.
func (b *Board) Warnings() []LayoutWarning {
	if b.element.IsZero() {
		return nil
	}
	return b.element.store.Warnings()
}
