package facet

import (
	"errors"
	"sort"
)

// Renderer walks a laid-out element tree, draws it into a buffer and
// registers a RenderingInfo snapshot per element into a RenderTree.
//
// Snapshots register top-down in pre-order, so Register always observes an
// already-present parent and the parent/child mirror stays complete.
// Painting is a separate pass: an element paints before its children, and
// siblings paint in ascending z-index (ties in child order), each subtree
// compositing as a unit so stacking contexts z-order atomically.
//
// A failure while preparing one element isolates to that element's subtree:
// nothing of the subtree is registered or painted (the registry keeps any
// previous snapshots), siblings proceed, and the pass reports the collected
// errors.
type Renderer struct {
	theme *Theme
	tree  *RenderTree
}

// NewRenderer creates a renderer resolving styles against theme and
// registering snapshots into tree.
func NewRenderer(theme *Theme, tree *RenderTree) *Renderer {
	return &Renderer{theme: theme, tree: tree}
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// SetTheme swaps the active theme. Computed-style caches notice the swap
// through the theme generation, so no explicit invalidation is needed.
func (r *Renderer) SetTheme(theme *Theme) {
	r.theme = theme
}

// Tree returns the registry snapshots are registered into.
func (r *Renderer) Tree() *RenderTree {
	return r.tree
}

// paintState is the per-element result of the prepare pass, consumed by the
// paint pass.
type paintState struct {
	style       Style
	borderStyle Style
	clip        Rect
	visible     bool
}

// Render renders the laid-out tree rooted at root into buf. Layout must
// have run first (bounds set). Returns the root's snapshot; per-element
// failures are joined into the returned error while unaffected siblings
// render normally.
func (r *Renderer) Render(root Element, buf *Buffer) (*RenderingInfo, error) {
	if root == nil {
		return nil, errorf(KindRendering, nil, "render: nil root")
	}
	if _, ok := root.node().Bounds(); !ok {
		return nil, errorf(KindRendering, root, "render: layout has not run")
	}

	clip := Rect{Width: buf.Width(), Height: buf.Height()}
	states := make(map[uint64]*paintState)
	var errs []error

	info := r.prepare(root, clip, "", states, &errs)
	if info == nil {
		return nil, errors.Join(errs...)
	}
	r.paint(root, buf, states)
	return info, errors.Join(errs...)
}

// prepare resolves styles, computes the snapshot and registers it, then
// recurses into children in child order. Returns nil if the element failed,
// in which case the error has been appended to errs and the subtree is
// skipped.
func (r *Renderer) prepare(el Element, clip Rect, inheritedCtx string, states map[uint64]*paintState, errs *[]error) *RenderingInfo {
	n := el.node()
	bounds := n.bounds

	state := InteractionState{}
	if ia, ok := el.(Interactive); ok {
		state = ia.State()
	}

	style := DefaultStyle()
	borderStyle := style
	if st, ok := el.(Stylable); ok {
		resolved, err := st.computedStyle(r.theme, state)
		if err != nil {
			*errs = append(*errs, err)
			return nil
		}
		style = resolved
		borderStyle, err = resolveBorderStyle(r.theme, state, el, style, st.StyleFragments())
		if err != nil {
			*errs = append(*errs, err)
			return nil
		}
	}

	ctx := inheritedCtx
	if n.stackingID != "" {
		ctx = n.stackingID
	}

	visibleRect := bounds.Intersect(clip)
	clipRegion := clip.Region()
	info := &RenderingInfo{
		Node:            el,
		Region:          bounds.Region(),
		ZIndex:          n.zIndex,
		StackingContext: ctx,
		Viewport:        &clipRegion,
		Clipped:         !bounds.In(clip),
		Visible:         !n.hidden && !visibleRect.Empty(),
	}
	r.tree.Register(info)

	states[el.ID()] = &paintState{
		style:       style,
		borderStyle: borderStyle,
		clip:        clip,
		visible:     info.Visible,
	}

	childClip := contentRect(el).Intersect(clip)
	for _, c := range el.Children() {
		r.prepare(c, childClip, ctx, states, errs)
	}
	return info
}

// paint draws the element and then its children, siblings in ascending
// z-index with ties keeping child order.
func (r *Renderer) paint(el Element, buf *Buffer, states map[uint64]*paintState) {
	ps, ok := states[el.ID()]
	if !ok {
		return // prepare failed; previous frame's cells remain
	}
	if ps.visible {
		r.drawChrome(el, buf, ps)
		if rd, ok := el.(Renderable); ok {
			rd.DrawContent(buf, contentRect(el), ps.clip, ps.style)
		}
	}

	children := el.Children()
	ordered := make([]Element, len(children))
	copy(ordered, children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].node().zIndex < ordered[j].node().zIndex
	})
	for _, c := range ordered {
		r.paint(c, buf, states)
	}
}

// drawChrome fills the background and draws the border ring, clipped.
func (r *Renderer) drawChrome(el Element, buf *Buffer, ps *paintState) {
	n := el.node()
	area := n.bounds.Intersect(ps.clip)
	if area.Empty() {
		return
	}

	// Opaque fill only when a background was styled; default background
	// lets underlying content show through.
	if ps.style.BG.Mode != ColorDefault {
		buf.FillRect(area.X, area.Y, area.Width, area.Height, NewCell(' ', ps.style))
	}

	if n.border.Line == BorderNone {
		return
	}
	chars, ok := CharsFor(n.border.Line)
	if !ok {
		return
	}
	// The ring is drawn on the outermost cell band; wider border widths
	// reserve layout space but render as the same single ring.
	drawBorderClipped(buf, n.bounds, ps.clip, chars, ps.borderStyle)
}

// drawBorderClipped draws a border ring restricted to the clip rect.
func drawBorderClipped(buf *Buffer, bounds, clip Rect, chars BorderChars, style Style) {
	if bounds.Width < 2 || bounds.Height < 2 {
		return
	}
	x2 := bounds.X + bounds.Width - 1
	y2 := bounds.Y + bounds.Height - 1

	set := func(x, y int, r rune) {
		if clip.Contains(x, y) {
			buf.Set(x, y, NewCell(r, style))
		}
	}

	set(bounds.X, bounds.Y, chars.TopLeft)
	set(x2, bounds.Y, chars.TopRight)
	set(bounds.X, y2, chars.BottomLeft)
	set(x2, y2, chars.BottomRight)
	for x := bounds.X + 1; x < x2; x++ {
		set(x, bounds.Y, chars.Horizontal)
		set(x, y2, chars.Horizontal)
	}
	for y := bounds.Y + 1; y < y2; y++ {
		set(bounds.X, y, chars.Vertical)
		set(x2, y, chars.Vertical)
	}
}

// RenderPass lays out and renders in one step: the synchronous pass the
// I/O layer triggers per external event.
func (r *Renderer) RenderPass(root Element, buf *Buffer) (*RenderingInfo, error) {
	if err := Layout(root, Rect{Width: buf.Width(), Height: buf.Height()}); err != nil {
		return nil, err
	}
	return r.Render(root, buf)
}
