package facet

import "sort"

// ComponentInstance is a reconciliation-tree node mirroring one Element's
// mount state and update scheduling. Each element pairs with at most one
// instance. The parent's child array is the single source of truth for
// ordering; sibling relations are derived by index lookup, never cached.
//
// State machine: unmounted -> mounted (Mount) -> unmounted (Unmount); no
// other transitions.
type ComponentInstance struct {
	node     Element
	parent   *ComponentInstance
	children []*ComponentInstance

	mounted  bool
	updated  bool
	rendered bool

	info        *RenderingInfo
	needsUpdate bool
	priority    int
}

// NewInstance creates an unmounted instance for the given element.
func NewInstance(el Element) *ComponentInstance {
	return &ComponentInstance{node: el}
}

// Node returns the mirrored element.
func (ci *ComponentInstance) Node() Element {
	return ci.node
}

// Parent returns the owning parent instance, or nil.
func (ci *ComponentInstance) Parent() *ComponentInstance {
	return ci.parent
}

// Children returns the ordered child instances.
func (ci *ComponentInstance) Children() []*ComponentInstance {
	return ci.children
}

// Mounted returns true between Mount and Unmount.
func (ci *ComponentInstance) Mounted() bool {
	return ci.mounted
}

// Mount links the instance under parent, appending it to parent's child
// sequence. Mounting an already-mounted instance is a programming error.
func (ci *ComponentInstance) Mount(parent *ComponentInstance) error {
	if ci.mounted {
		return errorf(KindComponent, ci.node, "mount: instance already mounted")
	}
	if parent != nil {
		ci.parent = parent
		parent.children = append(parent.children, ci)
	}
	ci.mounted = true
	return nil
}

// Unmount detaches the instance from its parent's child sequence and clears
// the parent link. Unmounting an instance that is not in its parent's
// children is a programming error and fails loudly.
func (ci *ComponentInstance) Unmount() error {
	if !ci.mounted {
		return errorf(KindComponent, ci.node, "unmount: instance not mounted")
	}
	if ci.parent != nil {
		idx := -1
		for i, c := range ci.parent.children {
			if c == ci {
				idx = i
				break
			}
		}
		if idx < 0 {
			return errorf(KindComponent, ci.node, "unmount: instance missing from parent's children")
		}
		ci.parent.children = append(ci.parent.children[:idx], ci.parent.children[idx+1:]...)
		ci.parent = nil
	}
	ci.mounted = false
	return nil
}

// NextSibling returns the instance following this one in the parent's child
// sequence, derived by index lookup. Nil for the last child or a root.
func (ci *ComponentInstance) NextSibling() *ComponentInstance {
	if ci.parent == nil {
		return nil
	}
	for i, c := range ci.parent.children {
		if c == ci && i+1 < len(ci.parent.children) {
			return ci.parent.children[i+1]
		}
	}
	return nil
}

// MarkForUpdate flags the instance for re-render with the given priority.
// Lower priority values are processed first; ties break by tree pre-order.
func (ci *ComponentInstance) MarkForUpdate(priority int) {
	ci.needsUpdate = true
	ci.priority = priority
}

// NeedsUpdate returns true if the instance awaits processing.
func (ci *ComponentInstance) NeedsUpdate() bool {
	return ci.needsUpdate
}

// Priority returns the last recorded update priority.
func (ci *ComponentInstance) Priority() int {
	return ci.priority
}

// ClearUpdate resets the needs-update flag after processing and records
// that the instance has been updated.
func (ci *ComponentInstance) ClearUpdate() {
	ci.needsUpdate = false
	ci.updated = true
}

// SetRenderingInfo caches the element's latest snapshot on the instance.
func (ci *ComponentInstance) SetRenderingInfo(info *RenderingInfo) {
	ci.info = info
	ci.rendered = info != nil
}

// RenderingInfo returns the cached snapshot, or nil.
func (ci *ComponentInstance) RenderingInfo() *RenderingInfo {
	return ci.info
}

// Rendered returns true once a snapshot has been cached.
func (ci *ComponentInstance) Rendered() bool {
	return ci.rendered
}

// Updated returns true once the instance has been processed at least once.
func (ci *ComponentInstance) Updated() bool {
	return ci.updated
}

// Descendants returns the full downward traversal in pre-order, excluding
// the instance itself. Used by invalidation propagation.
func (ci *ComponentInstance) Descendants() []*ComponentInstance {
	var out []*ComponentInstance
	var walk func(*ComponentInstance)
	walk = func(c *ComponentInstance) {
		for _, child := range c.children {
			out = append(out, child)
			walk(child)
		}
	}
	walk(ci)
	return out
}

// Ancestors returns the upward traversal from parent to root.
func (ci *ComponentInstance) Ancestors() []*ComponentInstance {
	var out []*ComponentInstance
	for p := ci.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// InvalidateSubtree marks the instance and all descendants for update at
// the given priority: the propagation used for style and theme changes.
func (ci *ComponentInstance) InvalidateSubtree(sched *UpdateScheduler, priority int) {
	sched.Schedule(ci, priority)
	for _, d := range ci.Descendants() {
		sched.Schedule(d, priority)
	}
}

// BuildInstanceTree creates a mounted instance tree mirroring the element
// tree rooted at root.
func BuildInstanceTree(root Element) (*ComponentInstance, error) {
	inst := NewInstance(root)
	if err := inst.Mount(nil); err != nil {
		return nil, err
	}
	for _, c := range root.Children() {
		child, err := BuildInstanceTree(c)
		if err != nil {
			return nil, err
		}
		// BuildInstanceTree mounted the child as a root; relink it here.
		child.parent = inst
		inst.children = append(inst.children, child)
	}
	return inst, nil
}

// Reconcile updates the instance subtree to mirror its element's current
// children: new elements get freshly mounted instances, instances whose
// elements left the tree are unmounted, and any instance whose child set or
// order changed is scheduled for update. Priority is the instance's depth,
// so shallower (enclosing) instances process first.
func (ci *ComponentInstance) Reconcile(sched *UpdateScheduler) error {
	return ci.reconcile(sched, 0)
}

func (ci *ComponentInstance) reconcile(sched *UpdateScheduler, depth int) error {
	existing := make(map[uint64]*ComponentInstance, len(ci.children))
	for _, c := range ci.children {
		existing[c.node.ID()] = c
	}

	want := ci.node.Children()
	next := make([]*ComponentInstance, 0, len(want))
	changed := len(want) != len(ci.children)

	for i, el := range want {
		inst, ok := existing[el.ID()]
		if ok {
			delete(existing, el.ID())
			if i >= len(ci.children) || ci.children[i] != inst {
				changed = true
			}
		} else {
			inst = NewInstance(el)
			inst.parent = ci
			inst.mounted = true
			changed = true
		}
		next = append(next, inst)
	}

	// Anything left in existing has no element in the tree anymore.
	for _, stale := range existing {
		stale.parent = nil
		stale.mounted = false
		changed = true
	}

	ci.children = next
	if changed {
		sched.Schedule(ci, depth)
	}
	for _, c := range ci.children {
		if err := c.reconcile(sched, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// UpdateScheduler batches instances marked for update and drains them in
// (priority, tree pre-order) order: lower priority values first, ties by
// pre-order position under the scheduler's root.
type UpdateScheduler struct {
	root    *ComponentInstance
	pending []*ComponentInstance
	queued  map[*ComponentInstance]bool
}

// NewUpdateScheduler creates a scheduler whose pre-order tie-break is
// computed against root's subtree.
func NewUpdateScheduler(root *ComponentInstance) *UpdateScheduler {
	return &UpdateScheduler{
		root:   root,
		queued: make(map[*ComponentInstance]bool),
	}
}

// Schedule marks the instance for update and enqueues it. Re-scheduling an
// already-queued instance only updates its priority (the lower value wins).
func (s *UpdateScheduler) Schedule(ci *ComponentInstance, priority int) {
	if ci == nil {
		return
	}
	if s.queued[ci] {
		if priority < ci.priority {
			ci.priority = priority
		}
		return
	}
	ci.MarkForUpdate(priority)
	s.queued[ci] = true
	s.pending = append(s.pending, ci)
}

// Pending returns the number of queued instances.
func (s *UpdateScheduler) Pending() int {
	return len(s.pending)
}

// Drain returns the queued instances sorted by (priority, pre-order) and
// resets the queue. Each returned instance has its needs-update flag
// cleared, ready for the caller to re-render.
func (s *UpdateScheduler) Drain() []*ComponentInstance {
	if len(s.pending) == 0 {
		return nil
	}
	order := s.preorderIndex()
	pos := func(ci *ComponentInstance) int {
		if p, ok := order[ci]; ok {
			return p
		}
		return int(^uint(0) >> 1)
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		a, b := s.pending[i], s.pending[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return pos(a) < pos(b)
	})
	out := s.pending
	s.pending = nil
	s.queued = make(map[*ComponentInstance]bool)
	for _, ci := range out {
		ci.ClearUpdate()
	}
	return out
}

// preorderIndex assigns each instance under root its pre-order position.
// Instances outside the root subtree sort last, keeping queue order.
func (s *UpdateScheduler) preorderIndex() map[*ComponentInstance]int {
	idx := make(map[*ComponentInstance]int)
	if s.root == nil {
		return idx
	}
	i := 0
	var walk func(*ComponentInstance)
	walk = func(ci *ComponentInstance) {
		idx[ci] = i
		i++
		for _, c := range ci.children {
			walk(c)
		}
	}
	walk(s.root)
	return idx
}
