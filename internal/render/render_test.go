package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/core"
)

func testScreen(t *testing.T, rows, cols int) *core.Screen {
	t.Helper()
	s, err := core.NewScreen(rows, cols)
	if err != nil {
		t.Fatalf("NewScreen failed: %v", err)
	}
	return s
}

func TestTextBlank(t *testing.T) {
	s := testScreen(t, 2, 3)
	if got := Text(s); got != "   \n   " {
		t.Errorf("Text() = %q, expected two rows of spaces", got)
	}
}

func TestTextWideGlyph(t *testing.T) {
	s := testScreen(t, 1, 4)
	s.Set(0, 0, core.NewCell('世', core.ColorDefault))
	s.Set(0, 1, core.NewCell('x', core.ColorDefault)) // covered by the wide glyph
	s.Set(0, 2, core.NewCell('a', core.ColorDefault))

	if got := Text(s); got != "世a " {
		t.Errorf("Text() = %q, expected %q", got, "世a ")
	}
}

func TestANSIAsciiProfileMatchesText(t *testing.T) {
	s := testScreen(t, 3, 5)
	s.Set(0, 0, core.NewCell('r', core.ColorRed))
	s.Set(1, 2, core.Cell{Glyph: 'b', Background: core.ColorBlue, Effects: core.EffectBold})

	if got, want := NewRenderer(termenv.Ascii).Render(s), Text(s); got != want {
		t.Errorf("Render() with Ascii profile = %q, expected %q", got, want)
	}
}

func TestANSIGroupsRuns(t *testing.T) {
	s := testScreen(t, 1, 6)
	for col := 0; col < 3; col++ {
		s.Set(0, col, core.NewCell('#', core.ColorRed))
	}
	s.Set(0, 4, core.NewCell('o', core.ColorGreen))

	out := NewRenderer(termenv.ANSI256).Render(s)

	if n := strings.Count(out, "\x1b[0m"); n != 2 {
		t.Errorf("expected 2 styled runs, found %d resets in %q", n, out)
	}
	if !strings.Contains(out, "###") {
		t.Errorf("red run should be emitted as one block: %q", out)
	}
	if plain := stripANSI(out); plain != Text(s) {
		t.Errorf("stripped output = %q, expected %q", plain, Text(s))
	}
}

func TestANSIDoesNotMutateFrame(t *testing.T) {
	c, err := canvas.New(4, 4)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}
	c.Circle(2, 2, 1, false, canvas.Plain(core.ColorCyan))
	f := c.EndFrame()
	before := f.String()

	_ = NewRenderer(termenv.TrueColor).Render(f)
	_ = Text(f)

	if f.String() != before {
		t.Error("rendering changed the frame")
	}
}

type countingWriter struct {
	writes int
	sb     strings.Builder
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.sb.Write(p)
}

func TestWriteFrameSingleWrite(t *testing.T) {
	s := testScreen(t, 3, 3)
	s.Set(1, 1, core.NewCell('@', core.ColorYellow))

	w := &countingWriter{}
	if err := NewRenderer(termenv.ANSI).WriteFrame(w, s, true); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if w.writes != 1 {
		t.Errorf("WriteFrame made %d writes, expected 1", w.writes)
	}
	if !strings.HasPrefix(w.sb.String(), cursorHome) {
		t.Error("output should start with cursor-home")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriteFrameError(t *testing.T) {
	s := testScreen(t, 1, 1)
	if err := NewRenderer(termenv.Ascii).WriteFrame(failingWriter{}, s, false); err == nil {
		t.Error("WriteFrame should report writer errors")
	}
}

func TestWriteFrameReusesStyles(t *testing.T) {
	s := testScreen(t, 2, 4)
	s.Set(0, 0, core.NewCell('#', core.ColorRed))
	s.Set(1, 3, core.NewCell('*', core.ColorRed))

	r := NewRenderer(termenv.ANSI)
	var first, second countingWriter
	if err := r.WriteFrame(&first, s, false); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	cached := len(r.styles)
	if err := r.WriteFrame(&second, s, false); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if len(r.styles) != cached {
		t.Errorf("second frame grew the style cache from %d to %d", cached, len(r.styles))
	}
	if first.sb.String() != second.sb.String() {
		t.Errorf("frames differ: %q vs %q", first.sb.String(), second.sb.String())
	}
	if plain := stripANSI(first.sb.String()); plain != Text(s)+"\n" {
		t.Errorf("WriteFrame() text = %q, expected %q", plain, Text(s)+"\n")
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name     string
		expected termenv.Profile
	}{
		{"ascii", termenv.Ascii},
		{"ANSI", termenv.ANSI},
		{"256", termenv.ANSI256},
		{"truecolor", termenv.TrueColor},
	}
	for _, tc := range tests {
		p, err := ParseProfile(tc.name)
		if err != nil {
			t.Errorf("ParseProfile(%q) failed: %v", tc.name, err)
			continue
		}
		if p != tc.expected {
			t.Errorf("ParseProfile(%q) = %v, expected %v", tc.name, p, tc.expected)
		}
	}

	if _, err := ParseProfile("cga"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("ParseProfile(cga) error = %v, expected ErrUnknownProfile", err)
	}
}

// stripANSI removes CSI sequences.
func stripANSI(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
