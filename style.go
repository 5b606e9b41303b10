package facet

// StyleSpec is one style fragment: every field is optional, and Flatten
// merges fragments field-by-field with later fragments winning. Colors may
// be concrete or symbolic theme references; resolution against a theme
// happens last (see ResolveStyle).
type StyleSpec struct {
	FG       *ColorRef
	BG       *ColorRef
	BorderFG *ColorRef
	Attr     *Attribute
}

// ColorRef is either a concrete color or a symbolic theme key. Theme keys
// are resolved at resolution time, not at authoring time, so a theme change
// invalidates previously resolved styles.
type ColorRef struct {
	color Color
	key   string
	ref   bool
}

// C wraps a concrete color for use in a StyleSpec.
func C(c Color) *ColorRef {
	return &ColorRef{color: c}
}

// Ref wraps a symbolic theme key for use in a StyleSpec.
func Ref(key string) *ColorRef {
	return &ColorRef{key: key, ref: true}
}

// IsRef returns true if the color is a theme reference.
func (c *ColorRef) IsRef() bool {
	return c.ref
}

// resolve produces the concrete color, consulting the theme for references.
func (c *ColorRef) resolve(theme *Theme, node Element) (Color, error) {
	if !c.ref {
		return c.color, nil
	}
	if theme == nil {
		return Color{}, errorf(KindComponent, node, "style: theme reference %q with no active theme", c.key)
	}
	col, err := theme.Color(c.key)
	if err != nil {
		return Color{}, errorf(KindComponent, node, "style: %v", err)
	}
	return col, nil
}

// Attrs wraps an attribute set for use in a StyleSpec.
func Attrs(a Attribute) *Attribute {
	return &a
}

// StateStyle is a style fragment computed from the element's current
// interaction state. It returns any fragment form accepted by Flatten.
type StateStyle func(InteractionState) any

// Create gives the style-table shape a name; it performs no transformation.
func Create(spec StyleSpec) StyleSpec {
	return spec
}

// Flatten merges an ordered sequence of optional style fragments into one
// record. Nil and false entries are skipped; nested slices are flattened in
// place; remaining fragments merge left-to-right with each field present in
// a later fragment overriding the same field from an earlier one. Returns
// nil if no fragment was present.
func Flatten(fragments []any) *StyleSpec {
	var out *StyleSpec
	for _, f := range fragments {
		out = mergeFragment(out, f)
	}
	return out
}

// Compose is Flatten over its positional arguments.
func Compose(fragments ...any) *StyleSpec {
	return Flatten(fragments)
}

func mergeFragment(acc *StyleSpec, f any) *StyleSpec {
	switch v := f.(type) {
	case nil:
		return acc
	case bool:
		// Conditional fragments collapse to a bare bool when the condition
		// fails; either value carries no fields.
		return acc
	case StyleSpec:
		return mergeSpec(acc, &v)
	case *StyleSpec:
		if v == nil {
			return acc
		}
		return mergeSpec(acc, v)
	case []any:
		for _, inner := range v {
			acc = mergeFragment(acc, inner)
		}
		return acc
	default:
		return acc
	}
}

func mergeSpec(acc, next *StyleSpec) *StyleSpec {
	if acc == nil {
		merged := *next
		return &merged
	}
	if next.FG != nil {
		acc.FG = next.FG
	}
	if next.BG != nil {
		acc.BG = next.BG
	}
	if next.BorderFG != nil {
		acc.BorderFG = next.BorderFG
	}
	if next.Attr != nil {
		acc.Attr = next.Attr
	}
	return acc
}

// resolveStateFragments expands StateStyle fragments against the given
// interaction state, leaving static fragments untouched. The expansion is
// positional: a state function's result participates in the left-to-right
// merge exactly where the function appeared.
func resolveStateFragments(state InteractionState, fragments []any) []any {
	out := make([]any, 0, len(fragments))
	for _, f := range fragments {
		switch v := f.(type) {
		case StateStyle:
			if v != nil {
				out = append(out, v(state))
			}
		case func(InteractionState) any:
			if v != nil {
				out = append(out, v(state))
			}
		default:
			out = append(out, f)
		}
	}
	return out
}

// ResolveStyle computes the effective concrete style for a set of fragments:
// state-dependent fragments are resolved against state, the result is
// flattened with later fragments winning field-by-field, and theme color
// references are looked up in theme. node is used for error attribution
// only and may be nil. A nil flatten result yields the default style.
func ResolveStyle(theme *Theme, state InteractionState, node Element, fragments ...any) (Style, error) {
	spec := Flatten(resolveStateFragments(state, fragments))
	style := DefaultStyle()
	if spec == nil {
		return style, nil
	}
	if spec.FG != nil {
		c, err := spec.FG.resolve(theme, node)
		if err != nil {
			return style, err
		}
		style.FG = c
	}
	if spec.BG != nil {
		c, err := spec.BG.resolve(theme, node)
		if err != nil {
			return style, err
		}
		style.BG = c
	}
	if spec.Attr != nil {
		style.Attr = *spec.Attr
	}
	return style, nil
}

// resolveBorderStyle produces the style borders are drawn with: BorderFG if
// set, falling back to the element's resolved foreground.
func resolveBorderStyle(theme *Theme, state InteractionState, node Element, base Style, fragments []any) (Style, error) {
	spec := Flatten(resolveStateFragments(state, fragments))
	if spec == nil || spec.BorderFG == nil {
		return base, nil
	}
	c, err := spec.BorderFG.resolve(theme, node)
	if err != nil {
		return base, err
	}
	base.FG = c
	return base, nil
}

// styleCore implements the Stylable capability: fragment storage plus a
// computed-style cache keyed on theme generation and interaction state.
// Embed alongside Node in stylable element types.
type styleCore struct {
	fragments []any

	cached      Style
	cachedOK    bool
	cachedTheme *Theme
	cachedGen   uint64
	cachedState InteractionState
}

// SetStyle replaces the style fragments and invalidates the cache.
func (s *styleCore) SetStyle(fragments ...any) {
	s.fragments = fragments
	s.cachedOK = false
}

// StyleFragments returns the currently set fragments.
func (s *styleCore) StyleFragments() []any {
	return s.fragments
}

// invalidateStyle drops the computed-style cache.
func (s *styleCore) invalidateStyle() {
	s.cachedOK = false
}

// resolve returns the cached style when fragments, theme (identity and
// generation) and interaction state are unchanged, recomputing otherwise.
func (s *styleCore) resolve(theme *Theme, state InteractionState, node Element) (Style, error) {
	var gen uint64
	if theme != nil {
		gen = theme.Generation()
	}
	if s.cachedOK && s.cachedTheme == theme && s.cachedGen == gen && s.cachedState == state {
		return s.cached, nil
	}
	style, err := ResolveStyle(theme, state, node, s.fragments...)
	if err != nil {
		return style, err
	}
	s.cached = style
	s.cachedOK = true
	s.cachedTheme = theme
	s.cachedGen = gen
	s.cachedState = state
	return style, nil
}
