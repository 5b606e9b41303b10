package facet

import "testing"

func mustLayout(t *testing.T, root Element, offered Rect) {
	t.Helper()
	if err := Layout(root, offered); err != nil {
		t.Fatalf("layout: %v", err)
	}
}

func boundsOf(t *testing.T, el Element) Rect {
	t.Helper()
	r, ok := el.node().Bounds()
	if !ok {
		t.Fatalf("element %d has no bounds", el.ID())
	}
	return r
}

func TestLayoutVerticalStacking(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(10))
	root.SetHeight(Cells(10))
	a := NewText("aaa")
	b := NewText("bb")
	if err := AppendChild(root, a); err != nil {
		t.Fatal(err)
	}
	if err := AppendChild(root, b); err != nil {
		t.Fatal(err)
	}

	mustLayout(t, root, Rect{Width: 10, Height: 10})

	if got := boundsOf(t, root); got != (Rect{Width: 10, Height: 10}) {
		t.Errorf("root bounds = %+v", got)
	}
	if got := boundsOf(t, a); got != (Rect{X: 0, Y: 0, Width: 3, Height: 1}) {
		t.Errorf("first child bounds = %+v", got)
	}
	if got := boundsOf(t, b); got != (Rect{X: 0, Y: 1, Width: 2, Height: 1}) {
		t.Errorf("second child bounds = %+v", got)
	}
}

func TestLayoutAutoHeightFromChildren(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(10))
	root.SetGap(1)
	for _, s := range []string{"one", "two"} {
		if err := AppendChild(root, NewText(s)); err != nil {
			t.Fatal(err)
		}
	}

	mustLayout(t, root, Rect{Width: 20, Height: 20})

	// Two one-line texts plus one gap.
	if got := boundsOf(t, root); got.Height != 3 {
		t.Errorf("root height = %d, want 3", got.Height)
	}
	if got := boundsOf(t, root.Children()[1]); got.Y != 2 {
		t.Errorf("second child Y = %d, want 2 (below gap)", got.Y)
	}
}

func TestLayoutGrowDistribution(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(10))
	root.SetHeight(Cells(11))
	t1 := NewText("a")
	s1 := NewSpacer()
	t2 := NewText("b")
	s2 := NewSpacer()
	for _, c := range []Element{t1, s1, t2, s2} {
		if err := AppendChild(root, c); err != nil {
			t.Fatal(err)
		}
	}

	mustLayout(t, root, Rect{Width: 10, Height: 11})

	// Remaining space is 11 - 2 fixed rows = 9, split between two equal grow
	// children: 4 for the first, 5 for the last (remainder cells go last).
	if got := boundsOf(t, s1); got.Height != 4 || got.Y != 1 {
		t.Errorf("first spacer = %+v, want height 4 at y 1", got)
	}
	if got := boundsOf(t, t2); got.Y != 5 {
		t.Errorf("second text Y = %d, want 5", got.Y)
	}
	if got := boundsOf(t, s2); got.Height != 5 || got.Y != 6 {
		t.Errorf("second spacer = %+v, want height 5 at y 6", got)
	}

	// The stack must sum exactly to the container height.
	last := boundsOf(t, s2)
	if last.Y+last.Height != 11 {
		t.Errorf("stack ends at %d, want 11", last.Y+last.Height)
	}
}

func TestLayoutHorizontal(t *testing.T) {
	root := NewBox()
	root.SetAxis(Horizontal)
	root.SetWidth(Cells(10))
	label := NewText("ab")
	fill := NewBox()
	fill.SetGrow(1)
	fill.SetHeight(Cells(2))
	if err := AppendChild(root, label); err != nil {
		t.Fatal(err)
	}
	if err := AppendChild(root, fill); err != nil {
		t.Fatal(err)
	}

	mustLayout(t, root, Rect{Width: 10, Height: 5})

	if got := boundsOf(t, label); got != (Rect{X: 0, Y: 0, Width: 2, Height: 1}) {
		t.Errorf("label bounds = %+v", got)
	}
	if got := boundsOf(t, fill); got != (Rect{X: 2, Y: 0, Width: 8, Height: 2}) {
		t.Errorf("grow box bounds = %+v", got)
	}
	// Auto container height follows the tallest child.
	if got := boundsOf(t, root); got.Height != 2 {
		t.Errorf("root height = %d, want 2", got.Height)
	}
}

func TestLayoutMarginOffsets(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(10))
	root.SetHeight(Cells(10))
	a := NewText("abc")
	a.SetMargin(UniformEdges(1))
	b := NewText("d")
	if err := AppendChild(root, a); err != nil {
		t.Fatal(err)
	}
	if err := AppendChild(root, b); err != nil {
		t.Fatal(err)
	}

	mustLayout(t, root, Rect{Width: 10, Height: 10})

	if got := boundsOf(t, a); got != (Rect{X: 1, Y: 1, Width: 3, Height: 1}) {
		t.Errorf("margined child bounds = %+v", got)
	}
	// The next sibling starts below the margined child's outer extent.
	if got := boundsOf(t, b); got.Y != 3 {
		t.Errorf("sibling Y = %d, want 3", got.Y)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(8))
	txt := NewText("hello")
	if err := AppendChild(root, txt); err != nil {
		t.Fatal(err)
	}

	mustLayout(t, root, Rect{Width: 8, Height: 4})
	first := boundsOf(t, txt)

	mustLayout(t, root, Rect{Width: 8, Height: 4})
	if got := boundsOf(t, txt); got != first {
		t.Errorf("second layout changed bounds: %+v vs %+v", got, first)
	}
	if root.LayoutDirty() {
		t.Error("root should be clean after layout")
	}
}

func TestLayoutDirtyRecompute(t *testing.T) {
	root := NewBox()
	root.SetWidth(Cells(10))
	root.SetHeight(Cells(10))
	txt := NewText("a")
	if err := AppendChild(root, txt); err != nil {
		t.Fatal(err)
	}
	mustLayout(t, root, Rect{Width: 10, Height: 10})

	if got := boundsOf(t, txt); got.Width != 1 {
		t.Fatalf("initial width = %d", got.Width)
	}

	txt.SetContent("abcd")
	if !txt.LayoutDirty() {
		t.Fatal("SetContent should mark layout dirty")
	}
	mustLayout(t, root, Rect{Width: 10, Height: 10})
	if got := boundsOf(t, txt); got.Width != 4 {
		t.Errorf("width after content change = %d, want 4", got.Width)
	}
	if txt.LayoutDirty() {
		t.Error("child should be clean again after layout")
	}
}

func TestLayoutValidation(t *testing.T) {
	t.Run("NegativeWidth", func(t *testing.T) {
		b := NewBox()
		b.SetWidth(Cells(-1))
		err := Layout(b, Rect{Width: 10, Height: 10})
		if err == nil {
			t.Fatal("expected error for negative width")
		}
		if KindOf(err) != KindLayoutCalculation {
			t.Errorf("kind = %v, want KindLayoutCalculation", KindOf(err))
		}
		if NodeOf(err) != Element(b) {
			t.Error("error should carry the offending element")
		}
	})

	t.Run("NegativeEdge", func(t *testing.T) {
		b := NewBox()
		b.SetPadding(Edges{Top: -1})
		if err := Layout(b, Rect{Width: 10, Height: 10}); err == nil {
			t.Fatal("expected error for negative padding")
		}
	})

	t.Run("NegativeGrow", func(t *testing.T) {
		root := NewBox()
		root.SetHeight(Cells(5))
		bad := NewBox()
		bad.SetGrow(-2)
		if err := AppendChild(root, bad); err != nil {
			t.Fatal(err)
		}
		if err := Layout(root, Rect{Width: 10, Height: 10}); err == nil {
			t.Fatal("expected error for negative grow")
		}
	})
}
