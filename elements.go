package facet

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// measurer is implemented by leaf elements whose auto size derives from
// content. availWidth is the width on offer; results are in whole cells.
type measurer interface {
	measure(availWidth int) (w, h int)
}

// Box is a container element: stylable, renderable and layoutable. Children
// stack along the box's axis.
type Box struct {
	Node
	styleCore
}

// NewBox creates an empty vertical box.
func NewBox() *Box {
	return &Box{Node: newNode()}
}

// SetAxis sets the layout axis for children.
func (b *Box) SetAxis(a Axis) {
	b.axis = a
	b.MarkLayoutDirty()
}

// Axis returns the layout axis.
func (b *Box) Axis() Axis {
	return b.axis
}

// SetGap sets the space between children along the axis.
func (b *Box) SetGap(g int) {
	b.gap = g
	b.MarkLayoutDirty()
}

// Gap returns the space between children.
func (b *Box) Gap() int {
	return b.gap
}

func (b *Box) computedStyle(theme *Theme, state InteractionState) (Style, error) {
	return b.styleCore.resolve(theme, state, b)
}

// DrawContent draws nothing; a box's visual is its background and border,
// which the renderer handles.
func (b *Box) DrawContent(buf *Buffer, content Rect, clip Rect, style Style) {}

// Text is a leaf element displaying (possibly multi-line) text.
// Stylable and renderable, not interactive.
type Text struct {
	Node
	styleCore
	content string
	lines   []string
}

// NewText creates a text element.
func NewText(content string) *Text {
	t := &Text{Node: newNode()}
	t.setContent(content)
	return t
}

// Content returns the current text.
func (t *Text) Content() string {
	return t.content
}

// SetContent replaces the text and marks layout dirty.
func (t *Text) SetContent(content string) {
	t.setContent(content)
	t.MarkLayoutDirty()
}

func (t *Text) setContent(content string) {
	t.content = content
	t.lines = strings.Split(content, "\n")
}

func (t *Text) computedStyle(theme *Theme, state InteractionState) (Style, error) {
	return t.styleCore.resolve(theme, state, t)
}

// measure returns the widest line's display width and the line count.
func (t *Text) measure(availWidth int) (w, h int) {
	for _, line := range t.lines {
		lw := runewidth.StringWidth(line)
		if lw > w {
			w = lw
		}
	}
	if w > availWidth {
		w = availWidth
	}
	return w, len(t.lines)
}

// DrawContent writes the text lines into the content area, clipped.
func (t *Text) DrawContent(buf *Buffer, content Rect, clip Rect, style Style) {
	area := content.Intersect(clip)
	if area.Empty() {
		return
	}
	for i, line := range t.lines {
		y := content.Y + i
		if y < area.Y || y >= area.Y+area.Height {
			continue
		}
		buf.WriteStringClipped(content.X, y, line, style, area.X+area.Width-content.X)
	}
}

// Button is an interactive leaf: stylable, renderable, and it accepts
// keyboard focus and key events. Its style fragments typically include a
// state function so focus/press changes restyle it.
type Button struct {
	Node
	styleCore
	label string
	state InteractionState

	// OnPress fires when the button is activated (enter or space).
	OnPress func()
}

// NewButton creates a button with the given label.
func NewButton(label string) *Button {
	return &Button{Node: newNode(), label: label}
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// SetLabel replaces the button text and marks layout dirty.
func (b *Button) SetLabel(label string) {
	b.label = label
	b.MarkLayoutDirty()
}

func (b *Button) computedStyle(theme *Theme, state InteractionState) (Style, error) {
	return b.styleCore.resolve(theme, state, b)
}

// Focused returns true if the button holds keyboard focus.
func (b *Button) Focused() bool {
	return b.state.Focused
}

// SetFocused updates focus state and invalidates the computed style.
func (b *Button) SetFocused(focused bool) {
	if b.state.Focused == focused {
		return
	}
	b.state.Focused = focused
	b.invalidateStyle()
}

// SetHovered updates hover state and invalidates the computed style.
func (b *Button) SetHovered(hovered bool) {
	if b.state.Hovered == hovered {
		return
	}
	b.state.Hovered = hovered
	b.invalidateStyle()
}

// SetPressed updates pressed state and invalidates the computed style.
func (b *Button) SetPressed(pressed bool) {
	if b.state.Pressed == pressed {
		return
	}
	b.state.Pressed = pressed
	b.invalidateStyle()
}

// State returns the current interaction state.
func (b *Button) State() InteractionState {
	return b.state
}

// HandleKey activates the button on enter or space. Malformed events are
// an input-parsing error.
func (b *Button) HandleKey(k KeyEvent) (bool, error) {
	if k.Rune == 0 && k.Name == "" {
		return false, errorf(KindInputParsing, b, "empty key event")
	}
	if k.Name == KeyEnter || k.Rune == ' ' {
		if b.OnPress != nil {
			b.OnPress()
		}
		return true, nil
	}
	return false, nil
}

// measure returns the label width and a height of one line.
func (b *Button) measure(availWidth int) (w, h int) {
	w = runewidth.StringWidth(b.label)
	if w > availWidth {
		w = availWidth
	}
	return w, 1
}

// DrawContent writes the label into the content area, clipped.
func (b *Button) DrawContent(buf *Buffer, content Rect, clip Rect, style Style) {
	area := content.Intersect(clip)
	if area.Empty() || content.Y < area.Y || content.Y >= area.Y+area.Height {
		return
	}
	buf.WriteStringClipped(content.X, content.Y, b.label, style, area.X+area.Width-content.X)
}

// Spacer is a layout-only element: it occupies space (typically via Grow)
// but is neither stylable nor renderable.
type Spacer struct {
	Node
}

// NewSpacer creates a spacer with grow factor 1.
func NewSpacer() *Spacer {
	s := &Spacer{Node: newNode()}
	s.grow = 1
	return s
}
