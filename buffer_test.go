package facet

import (
	"strings"
	"testing"
)

func TestBufferSetGet(t *testing.T) {
	buf := NewBuffer(4, 2)
	cell := NewCell('x', DefaultStyle().Bold())
	buf.Set(1, 1, cell)

	if got := buf.Get(1, 1); got != cell {
		t.Errorf("got %+v, want %+v", got, cell)
	}
	if got := buf.Get(0, 0); got != EmptyCell() {
		t.Errorf("untouched cell = %+v, want empty", got)
	}

	// Out of bounds is a no-op / empty.
	buf.Set(10, 10, cell)
	if got := buf.Get(10, 10); got != EmptyCell() {
		t.Errorf("out-of-bounds get = %+v", got)
	}
}

func TestBufferWriteString(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		n := buf.WriteString(2, 0, "abc", DefaultStyle())
		if n != 3 {
			t.Errorf("wrote %d cells, want 3", n)
		}
		if got := buf.GetLine(0); got != "  abc" {
			t.Errorf("line = %q", got)
		}
	})

	t.Run("ClipsAtMaxWidth", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		n := buf.WriteStringClipped(0, 0, "abcdef", DefaultStyle(), 4)
		if n != 4 {
			t.Errorf("wrote %d cells, want 4", n)
		}
		if got := buf.GetLine(0); got != "abcd" {
			t.Errorf("line = %q", got)
		}
	})

	t.Run("WideRunes", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		n := buf.WriteString(0, 0, "日本", DefaultStyle())
		if n != 4 {
			t.Errorf("wrote %d cells, want 4 (two wide runes)", n)
		}
		if buf.Get(0, 0).Rune != '日' || buf.Get(2, 0).Rune != '本' {
			t.Error("wide runes should land on even cells")
		}
		if buf.Get(1, 0).Rune != 0 {
			t.Error("cell after a wide rune should be blanked")
		}
	})

	t.Run("WideRuneDoesNotSplit", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		// Width 3 fits "a" plus one wide rune but not the second.
		n := buf.WriteStringClipped(0, 0, "a日本", DefaultStyle(), 3)
		if n != 3 {
			t.Errorf("wrote %d cells, want 3", n)
		}
		if buf.Get(3, 0).Rune != ' ' {
			t.Error("second wide rune should not be written at all")
		}
	})
}

func TestBufferFillRect(t *testing.T) {
	buf := NewBuffer(5, 3)
	buf.FillRect(1, 1, 3, 2, NewCell('#', DefaultStyle()))
	want := strings.Join([]string{
		"     ",
		" ### ",
		" ### ",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("buffer:\n%s\nwant:\n%s", got, want)
	}

	buf.Clear()
	if got := buf.StringTrimmed(); got != "" {
		t.Errorf("cleared buffer = %q", got)
	}
}

func TestBufferBorderMerge(t *testing.T) {
	// Two boxes sharing a vertical edge merge into tee junctions.
	buf := NewBuffer(9, 3)
	chars, _ := CharsFor(BorderSingleLine)
	buf.DrawBorder(0, 0, 5, 3, chars, DefaultStyle())
	buf.DrawBorder(4, 0, 5, 3, chars, DefaultStyle())

	want := strings.Join([]string{
		"┌───┬───┐",
		"│   │   │",
		"└───┴───┘",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("buffer:\n%s\nwant:\n%s", got, want)
	}
}

func TestBufferBorderMergeCross(t *testing.T) {
	buf := NewBuffer(5, 5)
	style := DefaultStyle()
	buf.HLine(0, 2, 5, BoxHorizontal, style)
	buf.VLine(2, 0, 5, BoxVertical, style)
	if got := buf.Get(2, 2).Rune; got != BoxCross {
		t.Errorf("junction = %q, want %q", got, BoxCross)
	}
}

func TestBufferNonBorderOverwrites(t *testing.T) {
	buf := NewBuffer(3, 1)
	buf.Set(0, 0, NewCell(BoxHorizontal, DefaultStyle()))
	buf.Set(0, 0, NewCell('a', DefaultStyle()))
	if got := buf.Get(0, 0).Rune; got != 'a' {
		t.Errorf("got %q, want plain overwrite", got)
	}
}

func TestBufferResize(t *testing.T) {
	buf := NewBuffer(4, 2)
	buf.WriteString(0, 0, "keep", DefaultStyle())

	buf.Resize(8, 3)
	if buf.Width() != 8 || buf.Height() != 3 {
		t.Fatalf("size = %dx%d", buf.Width(), buf.Height())
	}
	if got := buf.GetLine(0); got != "keep" {
		t.Errorf("line after grow = %q", got)
	}

	buf.Resize(2, 1)
	if got := buf.GetLine(0); got != "ke" {
		t.Errorf("line after shrink = %q", got)
	}
}

func TestBufferGetLine(t *testing.T) {
	buf := NewBuffer(6, 2)
	buf.WriteString(1, 0, "ab", DefaultStyle())

	if got := buf.GetLine(0); got != " ab" {
		t.Errorf("line = %q, want trailing spaces trimmed", got)
	}
	if got := buf.GetLine(1); got != "" {
		t.Errorf("empty line = %q", got)
	}
	if got := buf.GetLine(5); got != "" {
		t.Errorf("out-of-range line = %q", got)
	}
}
