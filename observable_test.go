package facet

import "testing"

func TestObservableNotifications(t *testing.T) {
	o := NewObservable[string]()
	var changes []Change[string]
	unsub := o.Subscribe(func(c Change[string]) {
		changes = append(changes, c)
	})

	o.Add("a").Add("b")
	o.Update(1, func(s *string) { *s = "B" })
	o.RemoveAt(0)
	o.Set([]string{"x", "y"})
	o.Clear()

	wantTypes := []ChangeType{ChangeAdd, ChangeAdd, ChangeUpdate, ChangeRemove, ChangeSet, ChangeClear}
	if len(changes) != len(wantTypes) {
		t.Fatalf("got %d changes, want %d", len(changes), len(wantTypes))
	}
	for i, wt := range wantTypes {
		if changes[i].Type != wt {
			t.Errorf("change %d type = %v, want %v", i, changes[i].Type, wt)
		}
	}
	if changes[2].Old != "b" || changes[2].Item != "B" {
		t.Errorf("update change = %+v", changes[2])
	}
	if changes[3].Old != "a" {
		t.Errorf("remove change = %+v", changes[3])
	}

	unsub()
	o.Add("silent")
	if len(changes) != len(wantTypes) {
		t.Error("unsubscribed listener should not fire")
	}
}

func TestObservableAccess(t *testing.T) {
	o := NewObservable[int]().Set([]int{10, 20, 30})
	if o.Len() != 3 {
		t.Fatalf("len = %d", o.Len())
	}
	if o.At(1) != 20 {
		t.Errorf("At(1) = %d", o.At(1))
	}
	if o.At(-1) != 0 || o.At(9) != 0 {
		t.Error("out-of-range At should return the zero value")
	}

	o.RemoveAt(9) // out of range, no-op
	if o.Len() != 3 {
		t.Error("out-of-range RemoveAt should not mutate")
	}
}

func TestBindKeepsChildrenInSync(t *testing.T) {
	box := NewBox()
	data := NewObservable[string]().Set([]string{"one", "two"})

	bound := Bind(box, data, func(item string, _ int) Element {
		return NewText(item)
	})
	if bound.Err() != nil {
		t.Fatal(bound.Err())
	}

	labels := func() []string {
		var out []string
		for _, c := range box.Children() {
			out = append(out, c.(*Text).Content())
		}
		return out
	}

	got := labels()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("initial children = %v", got)
	}

	data.Add("three")
	got = labels()
	if len(got) != 3 || got[2] != "three" {
		t.Errorf("children after add = %v", got)
	}

	data.RemoveAt(0)
	got = labels()
	if len(got) != 2 || got[0] != "two" {
		t.Errorf("children after remove = %v", got)
	}

	// Every child stays correctly parented across rebuilds.
	for _, c := range box.Children() {
		if c.Parent() != Element(box) {
			t.Fatal("child lost its parent link")
		}
	}

	bound.Dispose()
	data.Add("four")
	if len(box.Children()) != 2 {
		t.Error("disposed binding should stop syncing")
	}
	if bound.Box() != box {
		t.Error("Box should return the bound container")
	}
}
