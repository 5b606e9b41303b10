package facet

// Observable is a generic data container that notifies on changes.
// It separates data management from the element tree that displays it.
type Observable[T any] struct {
	items     []T
	listeners []func(Change[T])
}

// Change describes a modification to the observable.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Item  T // For Add/Update, the new value
	Old   T // For Update/Remove, the old value
}

type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
	ChangeClear
	ChangeSet // Full replacement
)

// NewObservable creates a new observable list.
func NewObservable[T any]() *Observable[T] {
	return &Observable[T]{}
}

// Items returns all items.
func (o *Observable[T]) Items() []T {
	return o.items
}

// Len returns the number of items.
func (o *Observable[T]) Len() int {
	return len(o.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (o *Observable[T]) At(i int) T {
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// Set replaces all items.
func (o *Observable[T]) Set(items []T) *Observable[T] {
	o.items = items
	o.notify(Change[T]{Type: ChangeSet})
	return o
}

// Add appends an item.
func (o *Observable[T]) Add(item T) *Observable[T] {
	idx := len(o.items)
	o.items = append(o.items, item)
	o.notify(Change[T]{Type: ChangeAdd, Index: idx, Item: item})
	return o
}

// RemoveAt removes the item at index i.
func (o *Observable[T]) RemoveAt(i int) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	o.items = append(o.items[:i], o.items[i+1:]...)
	o.notify(Change[T]{Type: ChangeRemove, Index: i, Old: old})
	return o
}

// Update modifies the item at index i.
func (o *Observable[T]) Update(i int, fn func(*T)) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	fn(&o.items[i])
	o.notify(Change[T]{Type: ChangeUpdate, Index: i, Item: o.items[i], Old: old})
	return o
}

// Clear removes all items.
func (o *Observable[T]) Clear() *Observable[T] {
	o.items = o.items[:0]
	o.notify(Change[T]{Type: ChangeClear})
	return o
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *Observable[T]) Subscribe(fn func(Change[T])) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		o.listeners[idx] = nil
	}
}

func (o *Observable[T]) notify(c Change[T]) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(c)
		}
	}
}

// BoundBox keeps a container's children in sync with an Observable: each
// item maps to one child element via the create function. Structural
// changes rebuild the container's child sequence, which a following
// Reconcile pass turns into instance mounts/unmounts and scheduled updates.
type BoundBox[T any] struct {
	box    *Box
	data   *Observable[T]
	create func(item T, index int) Element
	unsub  func()
	err    error
}

// Bind syncs box's children to data, creating one child per item.
func Bind[T any](box *Box, data *Observable[T], create func(item T, index int) Element) *BoundBox[T] {
	b := &BoundBox[T]{box: box, data: data, create: create}
	b.unsub = data.Subscribe(func(Change[T]) {
		b.rebuild()
	})
	b.rebuild()
	return b
}

// Box returns the bound container.
func (b *BoundBox[T]) Box() *Box {
	return b.box
}

// Err returns the first tree-mutation error the binding hit, if any.
func (b *BoundBox[T]) Err() error {
	return b.err
}

// Dispose cleans up the subscription.
func (b *BoundBox[T]) Dispose() {
	if b.unsub != nil {
		b.unsub()
	}
}

// rebuild recreates the container's child sequence from the data.
func (b *BoundBox[T]) rebuild() {
	for _, c := range append([]Element(nil), b.box.Children()...) {
		if err := RemoveChild(b.box, c); err != nil && b.err == nil {
			b.err = err
		}
	}
	for i, item := range b.data.Items() {
		if err := AppendChild(b.box, b.create(item, i)); err != nil && b.err == nil {
			b.err = err
		}
	}
}
