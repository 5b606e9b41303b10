// Command layoutdump renders a sample tree once at the current terminal size
// and prints the buffer plus the registry's view of it: regions, z-order and
// visibility. Useful for eyeballing layout changes without an interactive
// session.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"facet"
)

func buildTree() (*facet.Box, error) {
	root := facet.NewBox()
	root.SetBorder(facet.UniformBorder(facet.BorderSingleLine))
	root.SetPadding(facet.UniformEdges(1))
	root.SetGap(1)

	header := facet.NewText("layout dump")
	header.SetStyle(facet.StyleSpec{FG: facet.Ref(facet.ThemeAccent), Attr: facet.Attrs(facet.AttrBold)})

	columns := facet.NewBox()
	columns.SetAxis(facet.Horizontal)
	columns.SetGap(1)
	columns.SetGrow(1)

	left := facet.NewBox()
	left.SetBorder(facet.UniformBorder(facet.BorderRoundedLine))
	left.SetPadding(facet.UniformEdges(1))
	left.SetGrow(1)
	if err := facet.AppendChild(left, facet.NewText("left pane\ntwo lines")); err != nil {
		return nil, err
	}

	right := facet.NewBox()
	right.SetBorder(facet.UniformBorder(facet.BorderRoundedLine))
	right.SetPadding(facet.UniformEdges(1))
	right.SetGrow(2)
	right.SetZIndex(1)
	if err := facet.AppendChild(right, facet.NewText("right pane")); err != nil {
		return nil, err
	}

	footer := facet.NewText("one-shot dump; see registry listing below")
	footer.SetStyle(facet.StyleSpec{FG: facet.Ref(facet.ThemeMuted)})

	for _, c := range []facet.Element{header, columns, footer} {
		if err := facet.AppendChild(root, c); err != nil {
			return nil, err
		}
	}
	for _, c := range []facet.Element{left, right} {
		if err := facet.AppendChild(columns, c); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func run() error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h-1
	}

	root, err := buildTree()
	if err != nil {
		return err
	}
	root.SetHeight(facet.Cells(min(height, 16)))

	buf := facet.NewBuffer(width, min(height, 16))
	r := facet.NewRenderer(facet.ThemeDark(), facet.NewRenderTree())
	if _, err := r.RenderPass(root, buf); err != nil {
		return err
	}

	fmt.Println(buf.StringTrimmed())
	fmt.Println()

	fmt.Println("components by z-index:")
	for _, el := range r.Tree().ComponentsByZIndex() {
		info, ok := r.Tree().Get(el)
		if !ok {
			continue
		}
		fmt.Printf("  node %-3d z=%-2d region=(%d,%d)-(%d,%d) visible=%v clipped=%v ctx=%q\n",
			el.ID(), info.ZIndex,
			info.Region.StartX, info.Region.StartY, info.Region.EndX, info.Region.EndY,
			info.Visible, info.Clipped, info.StackingContext)
	}

	fmt.Printf("\nvisible: %d of %d registered\n",
		len(r.Tree().VisibleComponents()), r.Tree().Len())
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
