package facet

import "sync/atomic"

var nextNodeID atomic.Uint64

// Element is implemented by every node type in the tree. Concrete element
// types embed Node, which provides the implementation; the capability
// interfaces below (Stylable, Renderable, Layoutable, Interactive) are
// implemented selectively per type and discovered by type assertion.
type Element interface {
	// ID returns the element's stable identifier, unique for the process
	// lifetime and assigned at construction.
	ID() uint64

	// Parent returns the owning parent, or nil for a root or detached element.
	Parent() Element

	// Children returns the ordered child sequence. The returned slice is the
	// element's own; callers must not mutate it (use AppendChild/RemoveChild).
	Children() []Element

	// node exposes the embedded tree node to package internals.
	node() *Node
}

// Stylable elements carry style fragments and a computed-style cache.
type Stylable interface {
	Element

	// SetStyle replaces the element's style fragments and invalidates the
	// computed-style cache. Fragments follow the forms accepted by Flatten,
	// plus state-dependent functions (see ResolveStyle).
	SetStyle(fragments ...any)

	// StyleFragments returns the currently set fragments.
	StyleFragments() []any

	// computedStyle resolves and caches the effective style for the given
	// theme and interaction state.
	computedStyle(theme *Theme, state InteractionState) (Style, error)
}

// Renderable elements draw content into the buffer. Box-model chrome
// (background fill, border) is drawn by the renderer for every stylable
// element; DrawContent fills the content area only.
type Renderable interface {
	Element
	DrawContent(buf *Buffer, content Rect, clip Rect, style Style)
}

// Layoutable elements participate in dirty-flag driven layout.
type Layoutable interface {
	Element
	LayoutDirty() bool
	MarkLayoutDirty()
}

// Interactive elements hold keyboard focus and receive key events.
type Interactive interface {
	Element
	Focused() bool
	SetFocused(bool)
	State() InteractionState
	HandleKey(KeyEvent) (bool, error)
}

// Node is the base tree element. It carries identity, the parent/children
// links, the box-model fields and the last-computed bounds. Concrete element
// types embed it.
type Node struct {
	id       uint64
	parent   Element
	children []Element

	width, height Dimension
	margin        Edges
	padding       Edges
	border        Border

	// Layout hints consumed by the engine (see layout.go).
	axis Axis
	gap  int
	grow float64

	// Rendering hints consumed by the renderer (see render.go).
	zIndex     int
	stackingID string
	hidden     bool

	// Last computed geometry.
	bounds    Rect
	hasBounds bool

	layoutDirty bool
	childDirty  bool
	lastOffered Rect
	lastFill    axisFill
	hasOffered  bool
}

// newNode initializes the embedded base with a fresh ID.
func newNode() Node {
	return Node{id: nextNodeID.Add(1), layoutDirty: true}
}

// ID returns the node's stable identifier.
func (n *Node) ID() uint64 {
	return n.id
}

// Parent returns the owning parent element, or nil.
func (n *Node) Parent() Element {
	return n.parent
}

// Children returns the ordered child sequence.
func (n *Node) Children() []Element {
	return n.children
}

func (n *Node) node() *Node {
	return n
}

// Width returns the width dimension.
func (n *Node) Width() Dimension { return n.width }

// Height returns the height dimension.
func (n *Node) Height() Dimension { return n.height }

// Margin returns the margin edges.
func (n *Node) Margin() Edges { return n.margin }

// Padding returns the padding edges.
func (n *Node) Padding() Edges { return n.padding }

// Border returns the border record.
func (n *Node) Border() Border { return n.border }

// SetWidth sets the width dimension and marks layout dirty.
func (n *Node) SetWidth(d Dimension) {
	n.width = d
	n.MarkLayoutDirty()
}

// SetHeight sets the height dimension and marks layout dirty.
func (n *Node) SetHeight(d Dimension) {
	n.height = d
	n.MarkLayoutDirty()
}

// SetMargin sets the margin edges and marks layout dirty.
func (n *Node) SetMargin(e Edges) {
	n.margin = e
	n.MarkLayoutDirty()
}

// SetPadding sets the padding edges and marks layout dirty.
func (n *Node) SetPadding(e Edges) {
	n.padding = e
	n.MarkLayoutDirty()
}

// SetBorder sets the border record and marks layout dirty.
func (n *Node) SetBorder(b Border) {
	n.border = b
	n.MarkLayoutDirty()
}

// Grow returns the share of remaining main-axis space this node takes.
func (n *Node) Grow() float64 { return n.grow }

// SetGrow sets the flex grow factor and marks layout dirty.
func (n *Node) SetGrow(g float64) {
	n.grow = g
	n.MarkLayoutDirty()
}

// ZIndex returns the node's z ordering key.
func (n *Node) ZIndex() int { return n.zIndex }

// SetZIndex sets the z ordering key.
func (n *Node) SetZIndex(z int) { n.zIndex = z }

// StackingContext returns the node's stacking context identifier, or "" if
// the node does not establish one.
func (n *Node) StackingContext() string { return n.stackingID }

// SetStackingContext marks the node as establishing a stacking context:
// its descendants z-order together as a unit relative to outside siblings.
func (n *Node) SetStackingContext(id string) { n.stackingID = id }

// Hidden returns true if the node is excluded from visible output.
func (n *Node) Hidden() bool { return n.hidden }

// SetHidden toggles visibility. Hidden nodes still occupy layout space.
func (n *Node) SetHidden(h bool) { n.hidden = h }

// Bounds returns the last-computed bounds and whether they have been set.
func (n *Node) Bounds() (Rect, bool) {
	return n.bounds, n.hasBounds
}

// LayoutDirty returns true if the node needs a layout recompute.
func (n *Node) LayoutDirty() bool {
	return n.layoutDirty
}

// MarkLayoutDirty flags the node for recompute and records on each ancestor
// that a descendant is dirty, so layout can descend only into dirty subtrees.
func (n *Node) MarkLayoutDirty() {
	n.layoutDirty = true
	for p := n.parent; p != nil; p = p.node().parent {
		pn := p.node()
		if pn.childDirty {
			break
		}
		pn.childDirty = true
	}
}

// AppendChild appends child to parent's child sequence and links
// child.Parent to parent. It fails if child already has a parent, if
// parent and child are the same element, or if the append would create a
// cycle (child is an ancestor of parent).
func AppendChild(parent, child Element) error {
	if parent == nil || child == nil {
		return errorf(KindComponent, nil, "append: nil element")
	}
	cn := child.node()
	pn := parent.node()
	if cn == pn {
		return errorf(KindComponent, parent, "append: element cannot contain itself")
	}
	if cn.parent != nil {
		return errorf(KindComponent, child, "append: element already has parent %d; detach it first", cn.parent.ID())
	}
	for anc := pn.parent; anc != nil; anc = anc.node().parent {
		if anc.node() == cn {
			return errorf(KindComponent, child, "append: would create a cycle (child %d is an ancestor of parent %d)", cn.id, pn.id)
		}
	}
	pn.children = append(pn.children, child)
	cn.parent = parent
	pn.MarkLayoutDirty()
	cn.MarkLayoutDirty()
	return nil
}

// RemoveChild removes child from parent's child sequence and clears its
// parent link. It fails if child is not currently a child of parent.
func RemoveChild(parent, child Element) error {
	if parent == nil || child == nil {
		return errorf(KindComponent, nil, "remove: nil element")
	}
	pn := parent.node()
	cn := child.node()
	for i, c := range pn.children {
		if c.node() == cn {
			pn.children = append(pn.children[:i], pn.children[i+1:]...)
			cn.parent = nil
			pn.MarkLayoutDirty()
			cn.MarkLayoutDirty()
			return nil
		}
	}
	return errorf(KindComponent, parent, "remove: element %d is not a child of %d", cn.id, pn.id)
}

// ContentArea returns the node's content width and height: the last-computed
// bounds minus border widths and padding on each side, floored at zero.
// It is a pure function of already-resolved geometry.
func ContentArea(el Element) (width, height int) {
	n := el.node()
	w := n.bounds.Width - n.border.Widths.Horizontal() - n.padding.Horizontal()
	h := n.bounds.Height - n.border.Widths.Vertical() - n.padding.Vertical()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// contentRect returns the content area as an absolute rect.
func contentRect(el Element) Rect {
	n := el.node()
	return n.bounds.Inset(n.border.Widths).Inset(n.padding)
}
