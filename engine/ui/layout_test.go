package ui

import (
	"math"
	"testing"
)

type recordVisitor struct {
	order []ID
}

func (r *recordVisitor) Visit(id ID, b Bounds) { r.order = append(r.order, id) }

func mustBounds(t *testing.T, s *Store, id ID) Bounds {
	t.Helper()
	b, ok := s.BoundsByID(id)
	if !ok {
		t.Fatalf("no bounds for id %v", id)
	}
	return b
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFixedSizeWithPadding(t *testing.T) {
	s := NewStore(16)
	c := NewID("c")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(100), Height: Px(50), Padding: EdgesAll(10)},
	}.Child(
		s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Full, Height: Full}}),
	))
	root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

	if got := root.Bounds(); got.Size != V2(100, 50) {
		t.Errorf("root size = %v, want {100 50}", got.Size)
	}
	got := mustBounds(t, s, c)
	if got.Pos != V2(10, 10) || got.Size != V2(80, 30) {
		t.Errorf("child = %+v, want pos {10 10} size {80 30}", got)
	}
}

func TestAutoSizeFromChildren(t *testing.T) {
	s := NewStore(16)

	root := s.Box(Box{
		BoxStyle: BoxStyle{Padding: EdgesAll(5)},
	}.Child(
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(30), Height: Px(10)}}),
	))
	root.Layout(nil)

	// Main axis (vertical by default) sums, cross takes the max, padding
	// wraps both.
	if got := root.Bounds().Size; got != V2(40, 30) {
		t.Errorf("size = %v, want {40 30}", got)
	}
}

func TestGapBetweenChildren(t *testing.T) {
	s := NewStore(16)
	second := NewID("second")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Padding: EdgesAll(5), Gap: 4},
	}.Child(
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.BoxWithID(second, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
	))
	root.Layout(nil)

	if got := root.Bounds().Size; got != V2(30, 34) {
		t.Errorf("size = %v, want {30 34}", got)
	}
	if got := mustBounds(t, s, second).Pos; got != V2(5, 19) {
		t.Errorf("second child pos = %v, want {5 19}", got)
	}
}

func TestFractionSizing(t *testing.T) {
	s := NewStore(16)
	c := NewID("c")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(200), Height: Px(100)},
	}.Child(
		s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Fraction(0.5), Height: Fraction(0.25)}}),
	))
	root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

	if got := mustBounds(t, s, c).Size; got != V2(100, 25) {
		t.Errorf("child size = %v, want {100 25}", got)
	}
}

func TestMainAlignments(t *testing.T) {
	cases := []struct {
		name  string
		align MainAlign
		gap   float64
		ys    [3]float64
	}{
		{"start", MainStart, 0, [3]float64{0, 10, 20}},
		{"start gap", MainStart, 5, [3]float64{0, 15, 30}},
		{"center", MainCenter, 0, [3]float64{35, 45, 55}},
		{"end", MainEnd, 0, [3]float64{70, 80, 90}},
		{"space between", MainSpaceBetween, 0, [3]float64{0, 45, 90}},
		// Gap has no effect once the free space is being distributed.
		{"space between ignores gap", MainSpaceBetween, 50, [3]float64{0, 45, 90}},
		{"space around", MainSpaceAround, 0, [3]float64{70.0 / 6, 45, 45 + 10 + 70.0/3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(16)
			ids := [3]ID{NewID("a"), NewID("b"), NewID("c")}

			children := make([]ElementBox, 3)
			for i, id := range ids {
				children[i] = s.BoxWithID(id, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}})
			}
			root := s.Box(Box{
				BoxStyle: BoxStyle{Width: Px(20), Height: Px(100), MainAlign: tc.align, Gap: tc.gap},
				Children: children,
			})
			root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

			for i, id := range ids {
				if got := mustBounds(t, s, id).Pos.Y; !approx(got, tc.ys[i]) {
					t.Errorf("child %d Y = %v, want %v", i, got, tc.ys[i])
				}
			}
		})
	}
}

func TestSpaceBetweenSingleChild(t *testing.T) {
	s := NewStore(16)
	c := NewID("c")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(20), Height: Px(100), MainAlign: MainSpaceBetween},
	}.Child(
		s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
	))
	root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

	if got := mustBounds(t, s, c).Pos.Y; got != 0 {
		t.Errorf("single child Y = %v, want 0", got)
	}
}

func TestSpaceBetweenDivisorCountsAbsoluteChildren(t *testing.T) {
	s := NewStore(16)
	a, b := NewID("a"), NewID("b")

	// The absolute child consumes no content space but still counts toward
	// the distribution divisor: free 80 over (3-1) gaps, not (2-1).
	root := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(20), Height: Px(100), MainAlign: MainSpaceBetween},
	}.Child(
		s.BoxWithID(a, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.BoxWithID(b, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(5), Height: Px(5), Absolute: true}}),
	))
	root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

	if got := mustBounds(t, s, a).Pos.Y; got != 0 {
		t.Errorf("first child Y = %v, want 0", got)
	}
	if got := mustBounds(t, s, b).Pos.Y; got != 50 {
		t.Errorf("second child Y = %v, want 50", got)
	}
}

func TestGapIgnoredInSpaceDistributedAutoSize(t *testing.T) {
	s := NewStore(16)

	root := s.Box(Box{
		BoxStyle: BoxStyle{MainAlign: MainSpaceBetween, Gap: 50},
	}.Child(
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
	))
	root.Layout(nil)

	if got := root.Bounds().Size.Y; got != 20 {
		t.Errorf("auto height = %v, want 20 (gap ignored)", got)
	}
}

func TestCrossAlign(t *testing.T) {
	cases := []struct {
		name  string
		align Align
		x     float64
	}{
		{"start", AlignStart, 0},
		{"center", AlignCenter, 40},
		{"end", AlignEnd, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore(16)
			c := NewID("c")
			root := s.Box(Box{
				BoxStyle: BoxStyle{Width: Px(100), Height: Px(100), CrossAlign: tc.align},
			}.Child(
				s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
			))
			root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

			if got := mustBounds(t, s, c).Pos.X; got != tc.x {
				t.Errorf("X = %v, want %v", got, tc.x)
			}
		})
	}
}

func TestHorizontalAxis(t *testing.T) {
	s := NewStore(16)
	second := NewID("second")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Axis: AxisX},
	}.Child(
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(10)}}),
		s.BoxWithID(second, Box{BoxStyle: BoxStyle{Width: Px(20), Height: Px(30)}}),
	))
	root.Layout(nil)

	if got := root.Bounds().Size; got != V2(40, 30) {
		t.Errorf("size = %v, want {40 30}", got)
	}
	if got := mustBounds(t, s, second).Pos; got != V2(20, 0) {
		t.Errorf("second pos = %v, want {20 0}", got)
	}
}

func TestAbsoluteChild(t *testing.T) {
	s := NewStore(32)

	cases := []struct {
		name    string
		anchor  Vec2
		padding Edges
		want    Vec2
	}{
		{"bottom right", V2(1, 1), Edges{}, V2(80, 80)},
		{"centered", V2(0.5, 0.5), Edges{}, V2(40, 40)},
		{"padded", V2(1, 1), EdgesAll(10), V2(70, 70)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewID("c")
			root := s.Box(Box{
				BoxStyle: BoxStyle{Width: Px(100), Height: Px(100), Padding: tc.padding},
			}.Child(
				s.BoxWithID(c, Box{BoxStyle: BoxStyle{
					Width: Px(20), Height: Px(20), Absolute: true, Anchor: tc.anchor,
				}}),
			))
			root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

			if got := mustBounds(t, s, c).Pos; got != tc.want {
				t.Errorf("pos = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAbsoluteChildExcludedFromAutoSize(t *testing.T) {
	s := NewStore(16)
	flow := NewID("flow")

	root := s.Box(Box{}.Child(
		s.BoxWithID(flow, Box{BoxStyle: BoxStyle{Width: Px(10), Height: Px(10)}}),
		s.Box(Box{BoxStyle: BoxStyle{Width: Px(50), Height: Px(50), Absolute: true}}),
	))
	root.Layout(nil)

	if got := root.Bounds().Size; got != V2(10, 10) {
		t.Errorf("size = %v, want {10 10} (absolute child ignored)", got)
	}
	// The absolute child also takes no slot in the flow.
	if got := mustBounds(t, s, flow).Pos; got != V2(0, 0) {
		t.Errorf("flow child pos = %v, want {0 0}", got)
	}
}

func TestOffsetShiftsElement(t *testing.T) {
	s := NewStore(16)
	c := NewID("c")

	root := s.Box(Box{
		BoxStyle: BoxStyle{Width: Px(100), Height: Px(100)},
	}.Child(
		s.BoxWithID(c, Box{BoxStyle: BoxStyle{Width: Px(10), Height: Px(10), Offset: V2(5, 7)}}),
	))
	root.LayoutIn(V2(1000, 1000), Vec2{}, nil)

	if got := mustBounds(t, s, c).Pos; got != V2(5, 7) {
		t.Errorf("pos = %v, want {5 7}", got)
	}
}

func TestVisitOrderChildrenFirst(t *testing.T) {
	s := NewStore(16)
	p, c, g := NewID("p"), NewID("c"), NewID("g")

	root := s.BoxWithID(p, Box{}.Child(
		s.BoxWithID(c, Box{}.Child(
			s.BoxWithID(g, Box{BoxStyle: BoxStyle{Width: Px(5), Height: Px(5)}}),
		)),
	))

	var rec recordVisitor
	root.Layout(&rec)

	want := []ID{g, c, p}
	if len(rec.order) != len(want) {
		t.Fatalf("visited %d elements, want %d", len(rec.order), len(want))
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("visit order = %v, want %v", rec.order, want)
		}
	}
}

func TestLayoutRelativeToOwnSize(t *testing.T) {
	s := NewStore(16)

	e := s.Box(Box{BoxStyle: BoxStyle{Width: Px(40), Height: Px(20)}})
	e.LayoutRelativeToOwnSize(V2(0.5, 0.5), V2(100, 100), nil)

	if got := e.Bounds().Pos; got != V2(80, 90) {
		t.Errorf("pos = %v, want {80 90}", got)
	}
}

func TestLayoutInOffset(t *testing.T) {
	s := NewStore(16)

	e := s.Box(Box{BoxStyle: BoxStyle{Width: Px(10), Height: Px(10)}})
	e.LayoutIn(V2(100, 100), V2(30, 40), nil)

	if got := e.Bounds().Pos; got != V2(30, 40) {
		t.Errorf("pos = %v, want {30 40}", got)
	}
}
