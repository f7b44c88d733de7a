package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pwscope/internal/model"
)

func sampleReports() []model.CorpusReport {
	return []model.CorpusReport{
		{
			Corpus:     model.Corpus{Label: "rockyou"},
			Total:      100,
			Frequency:  model.ScoreFrequency{60, 20, 10, 5, 5},
			Uniqueness: model.UniquenessResult{Unique: 75, Duplicate: 25},
			Classes:    model.CharacterClassCounts{Digit: 50, Upper: 10, Special: 5},
		},
		{
			Corpus:     model.Corpus{Label: "generated"},
			Total:      40,
			Frequency:  model.ScoreFrequency{0, 0, 10, 10, 20},
			Uniqueness: model.UniquenessResult{Unique: 40},
			Classes:    model.CharacterClassCounts{Digit: 40, Upper: 40, Special: 40},
		},
	}
}

func TestRenderPanelsOnePanelPerCorpus(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPanels(&buf, sampleReports(), PanelOptions{Width: 60}); err != nil {
		t.Fatalf("RenderPanels failed: %v", err)
	}
	out := buf.String()
	for _, title := range []string{TitleStrength, TitleUniqueness, TitleCharacters} {
		for _, label := range []string{"rockyou", "generated"} {
			want := title + " (" + label + ")"
			if strings.Count(out, want) != 1 {
				t.Fatalf("expected exactly one panel %q in output:\n%s", want, out)
			}
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for non-terminal writer")
	}
	if !strings.Contains(out, "Unique 75.0%") || !strings.Contains(out, "Duplicate 25.0%") {
		t.Fatalf("expected uniqueness percentages in output:\n%s", out)
	}
}

func TestPlotBarsSharedScale(t *testing.T) {
	var buf bytes.Buffer
	panel := Panel{Title: "T", Bars: []Bar{{Label: "full", Value: 100}, {Label: "half", Value: 50}}}
	if err := PlotBars(&buf, panel, 100, 40, ""); err != nil {
		t.Fatalf("PlotBars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	full := strings.Count(lines[1], string(fullBlock))
	half := strings.Count(lines[2], string(fullBlock))
	if full != 2*half {
		t.Fatalf("expected full bar twice the half bar, got %d and %d", full, half)
	}
	if runewidth.StringWidth(lines[1]) != runewidth.StringWidth(lines[2]) {
		t.Fatalf("expected aligned rows: %q vs %q", lines[1], lines[2])
	}
}

func TestSharedScale(t *testing.T) {
	if got := SharedScale(sampleReports()); got != 105 {
		t.Fatalf("expected 105, got %v", got)
	}
	if got := SharedScale(nil); got != 0 {
		t.Fatalf("expected 0 for no reports, got %v", got)
	}
}

func TestRenderBarPartial(t *testing.T) {
	bar, cells := renderBar(0.5, 3)
	if cells != 2 {
		t.Fatalf("expected 2 cells, got %d", cells)
	}
	if bar != "█▌" {
		t.Fatalf("unexpected bar %q", bar)
	}
	if bar, cells := renderBar(2, 4); cells != 4 || bar != "████" {
		t.Fatalf("expected clamped full bar, got %q (%d)", bar, cells)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80 {
		t.Fatalf("expected width 80, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
