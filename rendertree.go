package facet

import "sort"

// RenderingInfo is a per-element snapshot of rendering metadata, produced
// once per render pass and never mutated after registration; the next pass
// replaces it wholesale.
type RenderingInfo struct {
	// Node is the element the snapshot belongs to. The snapshot does not
	// own the element.
	Node Element

	// Region is the element's rectangle in absolute buffer coordinates.
	Region BufferRegion

	// Children mirrors the element's child order at render time. Entries are
	// appended by RenderTree.Register as children register under an
	// already-registered parent.
	Children []*RenderingInfo

	// ZIndex is the ordering key; ties break by tree pre-order.
	ZIndex int

	// StackingContext groups descendants that z-order together as a unit.
	// Empty means the element participates in its parent's context.
	StackingContext string

	// Viewport is the clip rectangle the element was rendered within, or nil.
	Viewport *BufferRegion

	// Clipped is true if the element's region was not fully inside Viewport.
	Clipped bool

	// Visible is true if any part of the element can appear in the buffer.
	Visible bool
}

// RenderTree indexes the last-computed RenderingInfo per element for one
// render session. Construct one per application (or per test) instead of
// sharing process-global state; Clear resets it between independent passes.
//
// Ordering contract: Register links a child into its parent's Children list
// only when the parent is already registered, and it never backfills links
// afterwards. Callers must therefore register parents before their children
// (the renderer walks the tree top-down in pre-order); a parent registered
// after its children will not list them until the children re-register.
type RenderTree struct {
	infos map[uint64]*RenderingInfo
	order []uint64 // registration order, for stable z-index sorting
	root  *RenderingInfo
}

// NewRenderTree creates an empty registry.
func NewRenderTree() *RenderTree {
	return &RenderTree{
		infos: make(map[uint64]*RenderingInfo),
	}
}

// Register stores info keyed by its element, replacing any previous
// snapshot. If the element has a parent with a registered snapshot, info is
// appended to that parent's Children. If the element has no parent, info
// becomes the registry root. Replacement does not retroactively repair
// parent/child links formed before it (see the ordering contract above).
func (rt *RenderTree) Register(info *RenderingInfo) {
	if info == nil || info.Node == nil {
		return
	}
	id := info.Node.ID()
	if _, seen := rt.infos[id]; !seen {
		rt.order = append(rt.order, id)
	}
	rt.infos[id] = info

	if parent := info.Node.Parent(); parent != nil {
		if pinfo, ok := rt.infos[parent.ID()]; ok {
			pinfo.Children = append(pinfo.Children, info)
		}
	} else {
		rt.root = info
	}
}

// Get returns the element's current snapshot, or false if none registered.
func (rt *RenderTree) Get(el Element) (*RenderingInfo, bool) {
	if el == nil {
		return nil, false
	}
	info, ok := rt.infos[el.ID()]
	return info, ok
}

// Root returns the snapshot whose element has no parent, or nil.
func (rt *RenderTree) Root() *RenderingInfo {
	return rt.root
}

// Len returns the number of registered snapshots.
func (rt *RenderTree) Len() int {
	return len(rt.infos)
}

// ComponentsInRegion returns every registered element whose region
// intersects the query region, in registration order. Linear scan.
func (rt *RenderTree) ComponentsInRegion(region BufferRegion) []Element {
	var out []Element
	for _, id := range rt.order {
		info := rt.infos[id]
		if info.Region.Intersects(region) {
			out = append(out, info.Node)
		}
	}
	return out
}

// VisibleComponents returns elements whose snapshot is visible and not
// clipped, in registration order.
func (rt *RenderTree) VisibleComponents() []Element {
	var out []Element
	for _, id := range rt.order {
		info := rt.infos[id]
		if info.Visible && !info.Clipped {
			out = append(out, info.Node)
		}
	}
	return out
}

// ComponentsByZIndex returns all registered elements sorted ascending by
// z-index. The sort is stable: equal z-indexes keep registration order.
func (rt *RenderTree) ComponentsByZIndex() []Element {
	infos := make([]*RenderingInfo, 0, len(rt.order))
	for _, id := range rt.order {
		infos = append(infos, rt.infos[id])
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].ZIndex < infos[j].ZIndex
	})
	out := make([]Element, len(infos))
	for i, info := range infos {
		out[i] = info.Node
	}
	return out
}

// Clear atomically empties the registry and resets the root.
func (rt *RenderTree) Clear() {
	rt.infos = make(map[uint64]*RenderingInfo)
	rt.order = nil
	rt.root = nil
}
