package facet

// Box-model layout in two directions, following the engine's two-phase
// shape: widths resolve top-down (explicit, else measured content, else fill
// the offered space), heights resolve bottom-up (explicit, else measured
// content, else derived from laid-out children). All geometry is whole
// character cells; fractional shares floor, with the remainder cells going
// to the last grow child so the stack sums exactly to the distributed space.

// Axis selects the direction a container stacks its children in.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// axisFill tells a child to fill the offered extent on one axis, used when
// a parent distributes remaining space to grow children.
type axisFill uint8

const (
	fillNone axisFill = iota
	fillWidth
	fillHeight
)

// Layout computes bounds for the tree rooted at root within the offered
// rect. Recomputation only descends into subtrees that are dirty or whose
// offered space changed; a clean subtree with unchanged inputs is skipped
// entirely. The computation is idempotent: identical inputs produce
// identical bounds.
func Layout(root Element, offered Rect) error {
	return layoutElement(root, offered, fillNone)
}

func layoutElement(el Element, offered Rect, fill axisFill) error {
	n := el.node()
	if !n.layoutDirty && !n.childDirty && n.hasBounds && n.hasOffered &&
		offered == n.lastOffered && fill == n.lastFill {
		return nil
	}

	if err := validateGeometry(el); err != nil {
		return err
	}

	availW := max(offered.Width-n.margin.Horizontal(), 0)
	availH := max(offered.Height-n.margin.Vertical(), 0)
	chromeW := n.border.Widths.Horizontal() + n.padding.Horizontal()
	chromeH := n.border.Widths.Vertical() + n.padding.Vertical()

	m, measurable := el.(measurer)

	// Width: top-down.
	var w int
	switch {
	case fill == fillWidth:
		w = availW
	case !n.width.IsAuto():
		w = n.width.Value()
	case measurable:
		mw, _ := m.measure(max(availW-chromeW, 0))
		w = mw + chromeW
	default:
		w = availW
	}

	// Height: explicit and measured cases resolve now; containers derive
	// theirs from children below.
	h := -1
	switch {
	case fill == fillHeight:
		h = availH
	case !n.height.IsAuto():
		h = n.height.Value()
	case measurable:
		_, mh := m.measure(max(w-chromeW, 0))
		h = mh + chromeH
	case len(n.children) == 0:
		h = 0
	}

	n.bounds = Rect{
		X:      offered.X + n.margin.Left,
		Y:      offered.Y + n.margin.Top,
		Width:  w,
		Height: max(h, 0),
	}
	n.hasBounds = true

	if len(n.children) > 0 {
		// The main-axis budget children are offered: explicit height bounds
		// it, otherwise the available space does.
		budgetH := availH
		if h >= 0 {
			budgetH = n.bounds.Height
		}
		content := Rect{X: n.bounds.X, Y: n.bounds.Y, Width: n.bounds.Width, Height: budgetH}.
			Inset(n.border.Widths).Inset(n.padding)

		used, err := layoutChildren(n, content)
		if err != nil {
			return err
		}
		if h < 0 {
			n.bounds.Height = used + chromeH
		}
	}

	n.layoutDirty = false
	n.childDirty = false
	n.lastOffered = offered
	n.lastFill = fill
	n.hasOffered = true
	return nil
}

// layoutChildren sizes and positions n's children inside the content rect,
// returning the derived cross/main extent used for auto heights: the stacked
// extent for vertical containers, the tallest child for horizontal ones.
func layoutChildren(n *Node, content Rect) (used int, err error) {
	children := n.children
	gap := n.gap

	// Grow distribution needs the fixed extent first.
	var totalGrow float64
	for _, c := range children {
		totalGrow += c.node().grow
	}

	if n.axis == Horizontal {
		fixed := 0
		if totalGrow > 0 {
			for _, c := range children {
				cn := c.node()
				if cn.grow > 0 {
					continue
				}
				if err := layoutElement(c, Rect{X: content.X, Y: content.Y, Width: max(content.Width-fixed, 0), Height: content.Height}, fillNone); err != nil {
					return 0, err
				}
				fixed += cn.bounds.Width + cn.margin.Horizontal()
			}
		}
		gaps := gap * max(len(children)-1, 0)
		remaining := max(content.Width-fixed-gaps, 0)

		cursor := content.X
		maxH := 0
		assigned := 0
		growSeen := 0
		growCount := countGrow(children)
		for i, c := range children {
			cn := c.node()
			offered := Rect{X: cursor, Y: content.Y, Height: content.Height}
			f := fillNone
			if cn.grow > 0 {
				growSeen++
				share := int(float64(remaining) * (cn.grow / totalGrow))
				if growSeen == growCount {
					share = remaining - assigned // last grow child absorbs the rounding remainder
				}
				assigned += share
				offered.Width = share
				f = fillWidth
			} else {
				offered.Width = max(content.X+content.Width-cursor, 0)
			}
			if err := layoutElement(c, offered, f); err != nil {
				return 0, err
			}
			outerW := cn.bounds.Width + cn.margin.Horizontal()
			outerH := cn.bounds.Height + cn.margin.Vertical()
			cursor += outerW
			if i < len(children)-1 {
				cursor += gap
			}
			if outerH > maxH {
				maxH = outerH
			}
		}
		return maxH, nil
	}

	// Vertical.
	fixed := 0
	if totalGrow > 0 {
		for _, c := range children {
			cn := c.node()
			if cn.grow > 0 {
				continue
			}
			if err := layoutElement(c, Rect{X: content.X, Y: content.Y, Width: content.Width, Height: max(content.Height-fixed, 0)}, fillNone); err != nil {
				return 0, err
			}
			fixed += cn.bounds.Height + cn.margin.Vertical()
		}
	}
	gaps := gap * max(len(children)-1, 0)
	remaining := max(content.Height-fixed-gaps, 0)

	cursor := content.Y
	assigned := 0
	growSeen := 0
	growCount := countGrow(children)
	for i, c := range children {
		cn := c.node()
		offered := Rect{X: content.X, Y: cursor, Width: content.Width}
		f := fillNone
		if cn.grow > 0 {
			growSeen++
			share := int(float64(remaining) * (cn.grow / totalGrow))
			if growSeen == growCount {
				share = remaining - assigned
			}
			assigned += share
			offered.Height = share
			f = fillHeight
		} else {
			offered.Height = max(content.Y+content.Height-cursor, 0)
		}
		if err := layoutElement(c, offered, f); err != nil {
			return 0, err
		}
		cursor += cn.bounds.Height + cn.margin.Vertical()
		if i < len(children)-1 {
			cursor += gap
		}
	}
	return cursor - content.Y, nil
}

func countGrow(children []Element) int {
	n := 0
	for _, c := range children {
		if c.node().grow > 0 {
			n++
		}
	}
	return n
}

// validateGeometry fails fast on unsatisfiable box-model constraints.
func validateGeometry(el Element) error {
	n := el.node()
	if !n.width.IsAuto() && n.width.Value() < 0 {
		return errorf(KindLayoutCalculation, el, "negative width %d", n.width.Value())
	}
	if !n.height.IsAuto() && n.height.Value() < 0 {
		return errorf(KindLayoutCalculation, el, "negative height %d", n.height.Value())
	}
	for _, e := range []Edges{n.margin, n.padding, n.border.Widths} {
		if e.Top < 0 || e.Right < 0 || e.Bottom < 0 || e.Left < 0 {
			return errorf(KindLayoutCalculation, el, "negative edge in %+v", e)
		}
	}
	if n.grow < 0 {
		return errorf(KindLayoutCalculation, el, "negative grow factor %v", n.grow)
	}
	return nil
}
