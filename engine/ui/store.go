package ui

import (
	"fmt"

	"github.com/hubastard/sprig/engine/ui/arena"
)

// DefaultStoreCapacity is the element count a Store reserves when created
// with capacity <= 0.
const DefaultStoreCapacity = 4096

// Store owns element storage for one UI tree: a fixed-capacity arena of
// nodes plus a side index from ID to the node's handle for cross-frame
// lookup. One Store serves one goroutine; it is not safe for concurrent use
// and live ElementBoxes must not cross goroutines.
type Store struct {
	nodes *arena.Arena[node]
	byID  map[ID]arena.Handle

	warnings []LayoutWarning
}

// LayoutWarning records a non-fatal layout input problem, e.g. a wrap width
// that had to be clamped to stay positive.
type LayoutWarning struct {
	Msg string
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &Store{
		nodes: arena.New[node](capacity),
		byID:  make(map[ID]arena.Handle),
	}
}

// ElementBox is an owning handle to one stored element. Exactly one
// ElementBox owns a slot at a time; Release reclaims it. The zero value owns
// nothing.
type ElementBox struct {
	store *Store
	h     arena.Handle
}

// IsZero reports whether the handle owns nothing.
func (e ElementBox) IsZero() bool { return e.store == nil || e.h.IsZero() }

// ID returns the element's identity, or NoID for anonymous elements.
func (e ElementBox) ID() ID {
	if n := e.node(); n != nil {
		return n.id
	}
	return NoID
}

func (e ElementBox) node() *node {
	if e.store == nil {
		return nil
	}
	return e.store.nodes.Get(e.h)
}

func (e ElementBox) mustNode() *node {
	n := e.node()
	if n == nil {
		panic("ui: use of released element handle")
	}
	return n
}

// Bounds returns the element's computed bounds. Only meaningful after a
// layout pass over the current tree.
func (e ElementBox) Bounds() Bounds { return *e.mustNode().bounds() }

func (s *Store) put(n node) (ElementBox, error) {
	h, err := s.nodes.Alloc(n)
	if err != nil {
		return ElementBox{}, fmt.Errorf("ui: store element: %w", err)
	}
	if !n.id.IsNone() {
		s.byID[n.id] = h
	}
	return ElementBox{store: s, h: h}, nil
}

// mustPut is the convenience path used by tree builders; trees are sized
// well below arena capacity in practice, and the error path exists for
// callers that want to recover (see PutBox/PutText).
func (s *Store) mustPut(n node) ElementBox {
	e, err := s.put(n)
	if err != nil {
		panic(err)
	}
	return e
}

// Box stores an anonymous box element.
func (s *Store) Box(b Box) ElementBox {
	return s.mustPut(node{kind: kindBox, box: b})
}

// BoxWithID stores a box element tracked under id.
func (s *Store) BoxWithID(id ID, b Box) ElementBox {
	return s.mustPut(node{id: id, kind: kindBox, box: b})
}

// Text stores an anonymous text element.
func (s *Store) Text(t Text) ElementBox {
	return s.mustPut(node{kind: kindText, text: t})
}

// TextWithID stores a text element tracked under id.
func (s *Store) TextWithID(id ID, t Text) ElementBox {
	return s.mustPut(node{id: id, kind: kindText, text: t})
}

// PutBox is Box with a recoverable capacity error instead of a panic.
func (s *Store) PutBox(id ID, b Box) (ElementBox, error) {
	return s.put(node{id: id, kind: kindBox, box: b})
}

// PutText is Text with a recoverable capacity error instead of a panic.
func (s *Store) PutText(id ID, t Text) (ElementBox, error) {
	return s.put(node{id: id, kind: kindText, text: t})
}

// BoundsByID looks up the computed bounds of a tracked element. ok is false
// for anonymous, unknown, or released identities; callers treat that as
// "not laid out / not interactive", never as an error.
func (s *Store) BoundsByID(id ID) (Bounds, bool) {
	if id.IsNone() {
		return Bounds{}, false
	}
	h, ok := s.byID[id]
	if !ok {
		return Bounds{}, false
	}
	n := s.nodes.Get(h)
	if n == nil || n.id != id {
		// Stale index entry: the slot was released and possibly reused.
		return Bounds{}, false
	}
	return *n.bounds(), true
}

// AllIDs returns the identities currently tracked by the store.
func (s *Store) AllIDs() []ID {
	ids := make([]ID, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	return ids
}

// Len is the number of live elements in the store.
func (s *Store) Len() int { return s.nodes.Len() }

// Warnings returns the layout warnings recorded since the last ResetWarnings.
func (s *Store) Warnings() []LayoutWarning { return s.warnings }

func (s *Store) ResetWarnings() { s.warnings = s.warnings[:0] }

func (s *Store) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, LayoutWarning{Msg: fmt.Sprintf(format, args...)})
}

// Release frees the element and, recursively, everything it owns: box
// children and inline text sections. The identity index entry is removed
// only if it still maps to this exact handle, so an id re-registered by a
// newer element survives the release of the older one.
func (e ElementBox) Release() {
	n := e.node()
	if n == nil {
		return
	}
	switch n.kind {
	case kindBox:
		for _, ch := range n.box.Children {
			ch.Release()
		}
	case kindText:
		for _, sec := range n.text.Sections {
			if inl, ok := sec.(*Inline); ok {
				inl.Element.Release()
			}
		}
	}
	if !n.id.IsNone() {
		if cur, ok := e.store.byID[n.id]; ok && cur == e.h {
			delete(e.store.byID, n.id)
		}
	}
	e.store.nodes.Free(e.h)
}
