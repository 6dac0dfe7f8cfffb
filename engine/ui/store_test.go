package ui

import (
	"errors"
	"testing"

	"github.com/hubastard/sprig/engine/ui/arena"
)

func TestStoreBoundsByID(t *testing.T) {
	s := NewStore(16)
	id := NewID("panel")

	e := s.BoxWithID(id, Box{BoxStyle: BoxStyle{Width: Px(10), Height: Px(20)}})
	e.LayoutIn(V2(100, 100), Vec2{}, nil)

	b, ok := s.BoundsByID(id)
	if !ok {
		t.Fatal("expected bounds for a stored id")
	}
	if b.Size != V2(10, 20) {
		t.Errorf("size = %v, want {10 20}", b.Size)
	}

	if _, ok := s.BoundsByID(NewID("missing")); ok {
		t.Error("unknown id must not resolve")
	}
	if _, ok := s.BoundsByID(NoID); ok {
		t.Error("NoID must never resolve")
	}
}

func TestStoreCapacity(t *testing.T) {
	s := NewStore(2)

	if _, err := s.PutBox(NoID, Box{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := s.PutBox(NoID, Box{}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	_, err := s.PutBox(NoID, Box{})
	if !errors.Is(err, arena.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	// The store stays usable: freeing makes room again.
	all := s.Len()
	if all != 2 {
		t.Fatalf("len = %d, want 2", all)
	}
}

func TestReleaseFreesSubtree(t *testing.T) {
	s := NewStore(16)
	p, c := NewID("p"), NewID("c")

	root := s.BoxWithID(p, Box{}.Child(
		s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Px(5), Height: Px(5)}}),
	))
	root.Layout(nil)

	root.Release()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0 after release", s.Len())
	}
	if _, ok := s.BoundsByID(p); ok {
		t.Error("released root id must not resolve")
	}
	if _, ok := s.BoundsByID(c); ok {
		t.Error("released child id must not resolve")
	}
}

func TestReleaseKeepsNewerOwnerOfSameID(t *testing.T) {
	s := NewStore(16)
	id := NewID("panel")

	old := s.BoxWithID(id, Box{BoxStyle: BoxStyle{Width: Px(1), Height: Px(1)}})
	replacement := s.BoxWithID(id, Box{BoxStyle: BoxStyle{Width: Px(2), Height: Px(2)}})
	replacement.LayoutIn(V2(100, 100), Vec2{}, nil)

	// Releasing the stale tree must not unregister the id from the
	// element that now owns it.
	old.Release()

	b, ok := s.BoundsByID(id)
	if !ok {
		t.Fatal("id must still resolve to the replacement element")
	}
	if b.Size != V2(2, 2) {
		t.Errorf("size = %v, want the replacement's {2 2}", b.Size)
	}
}

func TestReleaseInvalidatesHandles(t *testing.T) {
	s := NewStore(16)

	e := s.Box(Box{})
	e.Release()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic when using a released handle")
		}
	}()
	e.Bounds()
}

func TestReleaseFreesInlineElements(t *testing.T) {
	s := NewStore(16)
	font := newFakeFont(1)

	badge := s.Box(Box{BoxStyle: BoxStyle{Width: Px(5), Height: Px(5)}})
	text := s.Text(Text{Sections: []Section{
		&TextRun{Text: "hi", Font: font, FontSize: 10},
		&Inline{Element: badge},
	}})

	text.Release()
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0 (inline elements released with the text)", s.Len())
	}
}

func TestAllIDs(t *testing.T) {
	s := NewStore(16)
	a, b := NewID("a"), NewID("b")
	s.BoxWithID(a, Box{})
	s.BoxWithID(b, Box{})
	s.Box(Box{}) // anonymous, not listed

	ids := s.AllIDs()
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want two entries", ids)
	}
	seen := map[ID]bool{ids[0]: true, ids[1]: true}
	if !seen[a] || !seen[b] {
		t.Errorf("ids = %v, want a and b", ids)
	}
}

func TestSlotReuseAfterRelease(t *testing.T) {
	s := NewStore(4)

	for i := 0; i < 100; i++ {
		e := s.Box(Box{}.Child(s.Box(Box{}), s.Box(Box{})))
		e.Release()
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}
