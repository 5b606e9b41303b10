package facet

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is a named table of symbolic color keys. Styles reference keys with
// Ref; resolution happens when a style is resolved, not when it is authored,
// so swapping or mutating the theme invalidates previously resolved styles.
// Every mutation bumps the generation counter, which computed-style caches
// key on.
type Theme struct {
	name   string
	colors map[string]Color
	gen    uint64
}

// NewTheme creates an empty theme.
func NewTheme(name string) *Theme {
	return &Theme{
		name:   name,
		colors: make(map[string]Color),
		gen:    1,
	}
}

// Name returns the theme's name.
func (t *Theme) Name() string {
	return t.name
}

// Generation returns the mutation counter. It changes whenever a key is
// defined or redefined, so cached resolutions can detect staleness.
func (t *Theme) Generation() uint64 {
	return t.gen
}

// Define sets a color key, replacing any previous value.
func (t *Theme) Define(key string, c Color) *Theme {
	t.colors[key] = c
	t.gen++
	return t
}

// DefineHex sets a color key from a CSS-style hex string ("#1e90ff").
func (t *Theme) DefineHex(key, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return errorf(KindInitialization, nil, "theme %s: key %q: %v", t.name, key, err)
	}
	r, g, b := c.RGB255()
	t.colors[key] = RGB(r, g, b)
	t.gen++
	return nil
}

// Color resolves a symbolic key to a concrete color. Unknown keys are an
// error; callers attribute it to the offending element (Component kind).
func (t *Theme) Color(key string) (Color, error) {
	c, ok := t.colors[key]
	if !ok {
		return Color{}, fmt.Errorf("theme %s has no color %q", t.name, key)
	}
	return c, nil
}

// Has returns true if the theme defines the key.
func (t *Theme) Has(key string) bool {
	_, ok := t.colors[key]
	return ok
}

// Lighten returns the key's color lightened by delta (0-1). Only RGB colors
// can be adjusted; palette and default colors are returned unchanged.
// Used to derive hover shades from base theme colors.
func (t *Theme) Lighten(key string, delta float64) (Color, error) {
	c, err := t.Color(key)
	if err != nil {
		return Color{}, err
	}
	return shade(c, delta), nil
}

// Darken returns the key's color darkened by delta (0-1). Used to derive
// pressed shades from base theme colors.
func (t *Theme) Darken(key string, delta float64) (Color, error) {
	c, err := t.Color(key)
	if err != nil {
		return Color{}, err
	}
	return shade(c, -delta), nil
}

// shade shifts an RGB color's luminance by delta, clamped to [0, 1].
func shade(c Color, delta float64) Color {
	if c.Mode != ColorRGB {
		return c
	}
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
	l += delta
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return RGB(r, g, b)
}

// Standard theme keys used by the built-in themes.
const (
	ThemeBase   = "base"
	ThemeMuted  = "muted"
	ThemeAccent = "accent"
	ThemeError  = "error"
	ThemeBorder = "border"
)

// ThemeDark returns a dark theme with light text on dark background.
func ThemeDark() *Theme {
	return NewTheme("dark").
		Define(ThemeBase, White).
		Define(ThemeMuted, BrightBlack).
		Define(ThemeAccent, BrightCyan).
		Define(ThemeError, BrightRed).
		Define(ThemeBorder, BrightBlack)
}

// ThemeLight returns a light theme with dark text on light background.
func ThemeLight() *Theme {
	return NewTheme("light").
		Define(ThemeBase, Black).
		Define(ThemeMuted, BrightBlack).
		Define(ThemeAccent, Blue).
		Define(ThemeError, Red).
		Define(ThemeBorder, White)
}
