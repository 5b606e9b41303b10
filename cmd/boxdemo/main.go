// Command boxdemo is an interactive demo: a themed element tree rendered
// through the engine, hosted in a bubbletea program that feeds it key and
// resize events. Tab cycles focus, enter presses the focused button, t swaps
// the theme, q quits.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"facet"
)

var footerStyle = lipgloss.NewStyle().Faint(true)

type model struct {
	root     *facet.Box
	counter  *facet.Text
	status   *facet.Text
	focus    *facet.FocusManager
	renderer *facet.Renderer
	buf      *facet.Buffer
	log      *zap.Logger

	dark    bool
	presses int
	frame   string
}

func newModel(log *zap.Logger) *model {
	m := &model{
		dark: true,
		log:  log,
	}

	m.root = facet.NewBox()
	m.root.SetBorder(facet.UniformBorder(facet.BorderRoundedLine))
	m.root.SetPadding(facet.UniformEdges(1))
	m.root.SetGap(1)
	m.root.SetStyle(facet.StyleSpec{BorderFG: facet.Ref(facet.ThemeBorder)})

	title := facet.NewText("facet demo")
	title.SetStyle(facet.StyleSpec{FG: facet.Ref(facet.ThemeAccent), Attr: facet.Attrs(facet.AttrBold)})

	m.counter = facet.NewText("presses: 0")
	m.counter.SetStyle(facet.StyleSpec{FG: facet.Ref(facet.ThemeBase)})

	m.status = facet.NewText("theme: dark")
	m.status.SetStyle(facet.StyleSpec{FG: facet.Ref(facet.ThemeMuted)})

	row := facet.NewBox()
	row.SetAxis(facet.Horizontal)
	row.SetGap(2)

	m.focus = facet.NewFocusManager()
	for _, label := range []string{"increment", "reset"} {
		b := facet.NewButton("[ " + label + " ]")
		b.SetStyle(
			facet.StyleSpec{FG: facet.Ref(facet.ThemeBase)},
			facet.StateStyle(func(s facet.InteractionState) any {
				if s.Focused {
					return facet.StyleSpec{FG: facet.Ref(facet.ThemeAccent), Attr: facet.Attrs(facet.AttrBold)}
				}
				return nil
			}),
		)
		switch label {
		case "increment":
			b.OnPress = func() {
				m.presses++
				m.counter.SetContent(fmt.Sprintf("presses: %d", m.presses))
			}
		case "reset":
			b.OnPress = func() {
				m.presses = 0
				m.counter.SetContent("presses: 0")
			}
		}
		m.focus.Register(b)
		must(facet.AppendChild(row, b))
	}

	must(facet.AppendChild(m.root, title))
	must(facet.AppendChild(m.root, m.counter))
	must(facet.AppendChild(m.root, facet.NewSpacer()))
	must(facet.AppendChild(m.root, row))
	must(facet.AppendChild(m.root, m.status))

	m.renderer = facet.NewRenderer(facet.ThemeDark(), facet.NewRenderTree())
	m.buf = facet.NewBuffer(60, 12)
	return m
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Reserve the footer line.
		m.buf.Resize(msg.Width, max(msg.Height-1, 1))
		m.log.Debug("resize", zap.Int("width", msg.Width), zap.Int("height", msg.Height))

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.dark = !m.dark
			if m.dark {
				m.renderer.SetTheme(facet.ThemeDark())
				m.status.SetContent("theme: dark")
			} else {
				m.renderer.SetTheme(facet.ThemeLight())
				m.status.SetContent("theme: light")
			}
			m.log.Info("theme toggled", zap.Bool("dark", m.dark))
		default:
			ev := facet.KeyEvent{Name: key}
			if rs := []rune(key); len(rs) == 1 {
				ev = facet.KeyEvent{Rune: rs[0]}
			}
			handled, err := m.focus.HandleKey(ev)
			if err != nil {
				m.log.Warn("key rejected", zap.String("key", key), zap.Error(err))
			} else if handled {
				m.log.Debug("key handled", zap.String("key", key))
			}
		}
	}
	return m, nil
}

func (m *model) View() string {
	start := time.Now()
	m.renderer.Tree().Clear()
	_, err := m.renderer.RenderPass(m.root, m.buf)
	if err != nil {
		// Keep the previous frame; a partial pass already drew what it could.
		m.log.Error("render pass", zap.Error(err))
	}
	m.frame = m.buf.String()
	m.log.Debug("render pass done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("registered", m.renderer.Tree().Len()))

	footer := footerStyle.Render("tab: focus  enter: press  t: theme  q: quit")
	return m.frame + "\n" + footer
}

func main() {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"boxdemo.log"}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := tea.NewProgram(newModel(logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
