package facet

// InteractionState is the per-element input state that state-dependent
// styles resolve against.
type InteractionState struct {
	Focused bool
	Hovered bool
	Pressed bool
}

// KeyEvent is one decoded keyboard event, delivered synchronously by the
// I/O layer. Printable keys carry Rune; special keys carry Name.
type KeyEvent struct {
	Rune rune
	Name string
}

// Special key names.
const (
	KeyEnter    = "enter"
	KeyTab      = "tab"
	KeyShiftTab = "shift+tab"
	KeyEscape   = "esc"
	KeyUp       = "up"
	KeyDown     = "down"
	KeyLeft     = "left"
	KeyRight    = "right"
)

// FocusManager coordinates keyboard focus across interactive elements.
// It cycles focus on Tab/Shift-Tab and routes other keys to the currently
// focused element.
type FocusManager struct {
	items   []Interactive
	current int

	nextKey  string
	prevKey  string
	onChange func(index int)
}

// NewFocusManager creates a focus manager with default Tab/Shift-Tab cycling.
func NewFocusManager() *FocusManager {
	return &FocusManager{
		nextKey: KeyTab,
		prevKey: KeyShiftTab,
	}
}

// Register adds an interactive element to the cycle.
// The first registered element receives initial focus.
func (fm *FocusManager) Register(el Interactive) *FocusManager {
	fm.items = append(fm.items, el)
	if len(fm.items) == 1 {
		el.SetFocused(true)
	}
	return fm
}

// NextKey sets the key name that moves focus forward (default: tab).
func (fm *FocusManager) NextKey(name string) *FocusManager {
	fm.nextKey = name
	return fm
}

// PrevKey sets the key name that moves focus backward (default: shift+tab).
func (fm *FocusManager) PrevKey(name string) *FocusManager {
	fm.prevKey = name
	return fm
}

// OnChange sets a callback that fires when focus changes.
func (fm *FocusManager) OnChange(fn func(index int)) *FocusManager {
	fm.onChange = fn
	return fm
}

// Next moves focus to the next element.
func (fm *FocusManager) Next() {
	fm.moveFocus(1)
}

// Prev moves focus to the previous element.
func (fm *FocusManager) Prev() {
	fm.moveFocus(-1)
}

func (fm *FocusManager) moveFocus(delta int) {
	if len(fm.items) <= 1 {
		return
	}
	fm.items[fm.current].SetFocused(false)
	fm.current = (fm.current + len(fm.items) + delta) % len(fm.items)
	fm.items[fm.current].SetFocused(true)
	if fm.onChange != nil {
		fm.onChange(fm.current)
	}
}

// Focus sets focus to a specific index.
func (fm *FocusManager) Focus(index int) {
	if index < 0 || index >= len(fm.items) || fm.current == index {
		return
	}
	fm.items[fm.current].SetFocused(false)
	fm.current = index
	fm.items[fm.current].SetFocused(true)
	if fm.onChange != nil {
		fm.onChange(fm.current)
	}
}

// Current returns the currently focused index.
func (fm *FocusManager) Current() int {
	return fm.current
}

// Focused returns the currently focused element, or nil when none are
// registered.
func (fm *FocusManager) Focused() Interactive {
	if len(fm.items) == 0 {
		return nil
	}
	return fm.items[fm.current]
}

// HandleKey processes one key event: cycling keys move focus, anything else
// is routed to the focused element. Returns true if the event was consumed.
func (fm *FocusManager) HandleKey(k KeyEvent) (bool, error) {
	if k.Rune == 0 && k.Name == "" {
		return false, errorf(KindInputParsing, nil, "empty key event")
	}
	switch k.Name {
	case fm.nextKey:
		fm.Next()
		return true, nil
	case fm.prevKey:
		fm.Prev()
		return true, nil
	}
	if len(fm.items) == 0 {
		return false, nil
	}
	return fm.items[fm.current].HandleKey(k)
}
