package ui

// HotActive describes an element's place in the pointer state machine.
type HotActive uint8

const (
	// StateNone means the pointer is neither over the element nor engaged
	// with it.
	StateNone HotActive = iota
	// StateHot means the pointer hovers the element with no button held.
	StateHot
	// StateActive means a press started on the element and has not been
	// released yet. The element stays active even if the pointer leaves.
	StateActive
)

func (s HotActive) String() string {
	switch s {
	case StateHot:
		return "hot"
	case StateActive:
		return "active"
	default:
		return "none"
	}
}

type hotState struct {
	kind HotActive
	id   ID
}

// InteractionState tracks which element is hot or active across frames and
// derives per-frame click edges. At most one element is hot or active at a
// time.
type InteractionState struct {
	state            hotState
	hovered          ID
	justStartedClick bool
	justEndedClick   bool
}

// Transition advances the state machine by one frame. hovered is the topmost
// element under the pointer (NoID for none) and mouseDown is the primary
// button level for this frame. The click edges reported by Of are valid
// until the next Transition.
func (s *InteractionState) Transition(hovered ID, mouseDown bool) {
	s.hovered = hovered
	s.justStartedClick = false
	s.justEndedClick = false

	switch s.state.kind {
	case StateNone:
		if hovered != NoID {
			if mouseDown {
				// No click edge: the press predates the hover (a held
				// button dragged onto the element). Only a press on a hot
				// element starts a click.
				s.state = hotState{kind: StateActive, id: hovered}
			} else {
				s.state = hotState{kind: StateHot, id: hovered}
			}
		}
	case StateHot:
		switch {
		case hovered == NoID:
			s.state = hotState{}
		case mouseDown:
			s.state = hotState{kind: StateActive, id: hovered}
			s.justStartedClick = true
		default:
			// Hotness follows the pointer between elements silently.
			s.state.id = hovered
		}
	case StateActive:
		if !mouseDown {
			if hovered == s.state.id {
				s.justEndedClick = true
				s.state.kind = StateHot
			} else {
				s.state = hotState{}
			}
		}
		// While the button is held the active element keeps its state,
		// even with the pointer elsewhere: drags don't drop mid-press.
	}
}

// Interaction is the per-element view of the interaction state for one frame.
type Interaction struct {
	HotActive        HotActive
	Hovered          bool
	JustStartedClick bool
	JustEndedClick   bool
}

// Clicked reports a completed press-and-release on the element.
func (i Interaction) Clicked() bool { return i.JustEndedClick }

// Of reports how the element with the given id relates to the current
// pointer state. Elements other than the single hot/active one always get
// StateNone.
func (s *InteractionState) Of(id ID) Interaction {
	var it Interaction
	if id == NoID {
		return it
	}
	it.Hovered = s.hovered == id
	if s.state.id == id {
		it.HotActive = s.state.kind
		it.JustStartedClick = s.justStartedClick
		it.JustEndedClick = s.justEndedClick
	}
	return it
}

type idBounds struct {
	id     ID
	bounds Bounds
}

// ElementContext collects the laid-out bounds of identified elements and
// feeds them to the interaction state machine. It implements BoundsVisitor,
// so passing it to Layout records every element that carries an ID.
type ElementContext struct {
	// idBounds is in visit order: children before parents, earlier
	// siblings first. Hit testing scans it front to back.
	idBounds    []idBounds
	interaction InteractionState
}

// Visit records the bounds of an identified element. Anonymous elements are
// skipped; they can't be addressed.
func (c *ElementContext) Visit(id ID, bounds Bounds) {
	if id == NoID {
		return
	}
	c.idBounds = append(c.idBounds, idBounds{id: id, bounds: bounds})
}

// ClearIDBounds drops the recorded bounds. Call it before re-laying-out the
// tree so stale rectangles never hit-test.
func (c *ElementContext) ClearIDBounds() {
	c.idBounds = c.idBounds[:0]
}

// HoveredElement returns the id of the first recorded element containing the
// point. Children are recorded before their parents, so the innermost
// element under the cursor wins.
func (c *ElementContext) HoveredElement(cursor Vec2) ID {
	for _, ib := range c.idBounds {
		if ib.bounds.Contains(cursor) {
			return ib.id
		}
	}
	return NoID
}

// StartFrame hit-tests the cursor against the recorded bounds and advances
// the interaction state. cursor is in the same space the layout ran in.
func (c *ElementContext) StartFrame(cursor Vec2, mouseDown bool) {
	c.interaction.Transition(c.HoveredElement(cursor), mouseDown)
}

// StartFrameFixedHeight converts a cursor position in screen pixels into the
// fixed-height layout space before hit-testing: the layout is
// layoutHeight units tall regardless of the window's pixel height.
func (c *ElementContext) StartFrameFixedHeight(cursorPx Vec2, mouseDown bool, layoutHeight, screenHeightPx float64) {
	scale := 1.0
	if screenHeightPx > 0 {
		scale = layoutHeight / screenHeightPx
	}
	c.StartFrame(Vec2{X: cursorPx.X * scale, Y: cursorPx.Y * scale}, mouseDown)
}

// Interaction exposes the per-element interaction view for this frame.
func (c *ElementContext) Interaction(id ID) Interaction {
	return c.interaction.Of(id)
}
