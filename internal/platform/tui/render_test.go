package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/kiosk-idle/internal/core"
)

func TestRenderScreenKeepsRowsAndRuns(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColored(1, 0, "ab", core.ColorPink)
	s.SetColored(3, 0, 'c', core.ColorBrown)
	s.DrawText(0, 2, "xyz")

	out := RenderScreen(s)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if !strings.Contains(rows[0], "ab") {
		t.Errorf("same-color run split: %q", rows[0])
	}
	if !strings.Contains(rows[0], "c") {
		t.Errorf("row 0 = %q, missing brown cell", rows[0])
	}
	if !strings.Contains(rows[2], "xyz") {
		t.Errorf("row 2 = %q, want xyz", rows[2])
	}
}

func TestEveryPaletteSlotHasAStyle(t *testing.T) {
	for c := core.ColorDefault; c.Valid(); c++ {
		if _, ok := cellStyles[c]; !ok {
			t.Errorf("no style for %s", c)
		}
	}
}

func TestUnknownColorRendersPlain(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered %q, want plain x", got)
	}
}
