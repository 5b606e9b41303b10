package facet

import "testing"

func infoFor(el Element, region BufferRegion) *RenderingInfo {
	return &RenderingInfo{
		Node:    el,
		Region:  region,
		ZIndex:  el.node().zIndex,
		Visible: true,
	}
}

func TestRenderTreeRegister(t *testing.T) {
	t.Run("ParentThenChild", func(t *testing.T) {
		a := NewBox()
		b := NewBox()
		if err := AppendChild(a, b); err != nil {
			t.Fatal(err)
		}

		rt := NewRenderTree()
		ai := infoFor(a, NewBufferRegion(0, 0, 10, 10))
		bi := infoFor(b, NewBufferRegion(0, 0, 5, 5))
		rt.Register(ai)
		rt.Register(bi)

		if rt.Root() != ai {
			t.Error("root should be the parentless snapshot")
		}
		count := 0
		for _, c := range ai.Children {
			if c == bi {
				count++
			}
		}
		if count != 1 {
			t.Errorf("parent children contain child %d times, want exactly 1", count)
		}
		if got, ok := rt.Get(b); !ok || got != bi {
			t.Error("Get should return the child snapshot")
		}
		if rt.Len() != 2 {
			t.Errorf("Len = %d, want 2", rt.Len())
		}
	})

	t.Run("ChildBeforeParentNotLinked", func(t *testing.T) {
		a := NewBox()
		b := NewBox()
		if err := AppendChild(a, b); err != nil {
			t.Fatal(err)
		}

		rt := NewRenderTree()
		bi := infoFor(b, NewBufferRegion(0, 0, 5, 5))
		ai := infoFor(a, NewBufferRegion(0, 0, 10, 10))
		rt.Register(bi)
		rt.Register(ai)

		if len(ai.Children) != 0 {
			t.Error("links are not backfilled; parent registered late has no children")
		}
		if rt.Len() != 2 {
			t.Errorf("Len = %d, want 2", rt.Len())
		}
	})

	t.Run("ReplaceKeepsCount", func(t *testing.T) {
		a := NewBox()
		rt := NewRenderTree()
		rt.Register(infoFor(a, NewBufferRegion(0, 0, 2, 2)))
		second := infoFor(a, NewBufferRegion(0, 0, 4, 4))
		rt.Register(second)

		if rt.Len() != 1 {
			t.Errorf("Len = %d, want 1 after replacement", rt.Len())
		}
		if got, _ := rt.Get(a); got != second {
			t.Error("Get should return the latest snapshot")
		}
	})

	t.Run("NilIgnored", func(t *testing.T) {
		rt := NewRenderTree()
		rt.Register(nil)
		rt.Register(&RenderingInfo{})
		if rt.Len() != 0 {
			t.Errorf("Len = %d, want 0", rt.Len())
		}
	})
}

func TestRenderTreeQueries(t *testing.T) {
	a := NewBox()
	b := NewBox()
	c := NewBox()
	if err := AppendChild(a, b); err != nil {
		t.Fatal(err)
	}
	if err := AppendChild(a, c); err != nil {
		t.Fatal(err)
	}

	rt := NewRenderTree()
	ai := infoFor(a, NewBufferRegion(0, 0, 20, 10))
	bi := infoFor(b, NewBufferRegion(0, 0, 10, 5))
	ci := infoFor(c, NewBufferRegion(10, 0, 20, 5))
	ci.Clipped = true
	rt.Register(ai)
	rt.Register(bi)
	rt.Register(ci)

	t.Run("InRegion", func(t *testing.T) {
		got := rt.ComponentsInRegion(NewBufferRegion(0, 0, 5, 5))
		if len(got) != 2 || got[0] != Element(a) || got[1] != Element(b) {
			t.Errorf("got %d elements, want root and first child", len(got))
		}

		got = rt.ComponentsInRegion(NewBufferRegion(15, 0, 16, 1))
		if len(got) != 2 || got[1] != Element(c) {
			t.Errorf("right half query got %d elements", len(got))
		}

		if got := rt.ComponentsInRegion(NewBufferRegion(0, 20, 5, 25)); got != nil {
			t.Errorf("off-screen query = %v, want none", got)
		}
	})

	t.Run("Visible", func(t *testing.T) {
		got := rt.VisibleComponents()
		if len(got) != 2 {
			t.Fatalf("got %d visible, want 2 (clipped element excluded)", len(got))
		}
		for _, el := range got {
			if el == Element(c) {
				t.Error("clipped element should not be listed")
			}
		}
	})

	t.Run("Clear", func(t *testing.T) {
		rt.Clear()
		if rt.Len() != 0 || rt.Root() != nil {
			t.Error("Clear should empty the registry and reset the root")
		}
		if got := rt.ComponentsInRegion(NewBufferRegion(0, 0, 100, 100)); got != nil {
			t.Errorf("query after Clear = %v", got)
		}
	})
}

func TestRenderTreeZIndexOrder(t *testing.T) {
	rt := NewRenderTree()
	var els []*Box
	for _, z := range []int{3, 1, 2, 1} {
		b := NewBox()
		b.SetZIndex(z)
		els = append(els, b)
		rt.Register(infoFor(b, NewBufferRegion(0, 0, 1, 1)))
	}

	got := rt.ComponentsByZIndex()
	zs := make([]int, len(got))
	for i, el := range got {
		zs[i] = el.node().zIndex
	}
	for i := 1; i < len(zs); i++ {
		if zs[i] < zs[i-1] {
			t.Fatalf("z-indexes not non-decreasing: %v", zs)
		}
	}
	// Stable: the two z=1 elements keep registration order.
	if got[0] != Element(els[1]) || got[1] != Element(els[3]) {
		t.Error("equal z-indexes should keep registration order")
	}
	if got[3] != Element(els[0]) {
		t.Error("highest z-index should sort last")
	}
}
