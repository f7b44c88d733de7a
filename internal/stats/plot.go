package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/pwscope/internal/model"
)

// Bar is one labeled value in a panel.
type Bar struct {
	Label string
	Value float64
}

// Panel is one corpus's chart within a metric family.
type Panel struct {
	Title string
	Bars  []Bar
}

type ansiColor struct {
	name string
	code string
}

const (
	minPlotWidth        = 10
	axisSeparator       = " │"
	fullBlock           = '█'
	splitFill           = '░'
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
	headroom            = 1.05
)

// Metric family titles.
const (
	TitleStrength   = "Password Strength Distribution"
	TitleUniqueness = "Uniqueness of Passwords"
	TitleCharacters = "Character Type Distribution"
)

// partialBlocks holds eighth-width blocks, index = eighths filled.
var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "yellow", code: "\x1b[33m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

const (
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
)

// PanelOptions controls text panel rendering.
type PanelOptions struct {
	// Width is the total line width. Zero uses the terminal width.
	Width int
	// ForceColor emits ANSI colors even when w is not a terminal.
	ForceColor bool
}

// StrengthPanel builds the score histogram panel for one corpus.
func StrengthPanel(r model.CorpusReport) Panel {
	bars := make([]Bar, 0, model.NumStrengths)
	for _, s := range model.Strengths() {
		label, err := s.Label()
		if err != nil {
			continue
		}
		bars = append(bars, Bar{Label: label, Value: float64(r.Frequency[s])})
	}
	return Panel{Title: fmt.Sprintf("%s (%s)", TitleStrength, r.Corpus.Label), Bars: bars}
}

// UniquenessPanel builds the unique/duplicate split for one corpus.
func UniquenessPanel(r model.CorpusReport) Panel {
	return Panel{
		Title: fmt.Sprintf("%s (%s)", TitleUniqueness, r.Corpus.Label),
		Bars: []Bar{
			{Label: "Unique", Value: float64(r.Uniqueness.Unique)},
			{Label: "Duplicate", Value: float64(r.Uniqueness.Duplicate)},
		},
	}
}

// CharacterPanel builds the character-class coverage panel for one corpus.
func CharacterPanel(r model.CorpusReport) Panel {
	return Panel{
		Title: fmt.Sprintf("%s (%s)", TitleCharacters, r.Corpus.Label),
		Bars: []Bar{
			{Label: "Digits", Value: float64(r.Classes.Digit)},
			{Label: "Upper case", Value: float64(r.Classes.Upper)},
			{Label: "Special", Value: float64(r.Classes.Special)},
		},
	}
}

// SharedScale returns the common axis limit: the largest corpus total plus headroom.
func SharedScale(reports []model.CorpusReport) float64 {
	maxTotal := 0
	for _, r := range reports {
		if r.Total > maxTotal {
			maxTotal = r.Total
		}
	}
	return float64(maxTotal) * headroom
}

// Family is one metric family of comparative panels.
type Family int

// Metric families in rendering order.
const (
	FamilyStrength Family = iota
	FamilyUniqueness
	FamilyCharacters
)

// Families lists every metric family in rendering order.
func Families() []Family {
	return []Family{FamilyStrength, FamilyUniqueness, FamilyCharacters}
}

// Title returns the section title of the family.
func (f Family) Title() string {
	switch f {
	case FamilyStrength:
		return TitleStrength
	case FamilyUniqueness:
		return TitleUniqueness
	case FamilyCharacters:
		return TitleCharacters
	default:
		return fmt.Sprintf("Family %d", int(f))
	}
}

// RenderPanels writes the three metric families, one panel per corpus each.
func RenderPanels(w io.Writer, reports []model.CorpusReport, opts PanelOptions) error {
	if len(reports) == 0 {
		return nil
	}
	for _, f := range Families() {
		if err := writeHeading(w, f.Title()); err != nil {
			return err
		}
		if err := RenderFamily(w, f, reports, opts); err != nil {
			return err
		}
	}
	return nil
}

// RenderFamily writes one panel per corpus for a metric family. Bar panels share a scale.
func RenderFamily(w io.Writer, f Family, reports []model.CorpusReport, opts PanelOptions) error {
	if len(reports) == 0 {
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	useColor := shouldUseColor(w, opts.ForceColor)
	scale := SharedScale(reports)

	for i, r := range reports {
		var err error
		switch f {
		case FamilyStrength:
			err = PlotBars(w, StrengthPanel(r), scale, width, colorFor(i, useColor))
		case FamilyUniqueness:
			err = PlotSplit(w, UniquenessPanel(r), width, useColor)
		case FamilyCharacters:
			err = PlotBars(w, CharacterPanel(r), scale, width, colorFor(i, useColor))
		default:
			err = fmt.Errorf("unknown panel family %d", int(f))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// PlotBars renders a horizontal bar chart scaled to scaleMax. An empty color disables ANSI output.
func PlotBars(w io.Writer, panel Panel, scaleMax float64, width int, color string) error {
	if _, err := fmt.Fprintln(w, panel.Title); err != nil {
		return err
	}
	if len(panel.Bars) == 0 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}
	labelWidth := 0
	valueWidth := 0
	for _, b := range panel.Bars {
		labelWidth = maxInt(labelWidth, runewidth.StringWidth(b.Label))
		valueWidth = maxInt(valueWidth, len(formatCount(b.Value)))
	}
	barWidth := PlotWidthFor(width - labelWidth - runewidth.StringWidth(axisSeparator) - valueWidth - 1)
	if scaleMax <= 0 {
		scaleMax = 1
	}
	for _, b := range panel.Bars {
		bar, cells := renderBar(b.Value/scaleMax, barWidth)
		if color != "" && bar != "" {
			bar = color + bar + colorReset
		}
		line := fmt.Sprintf("%s%s%s%s %*s",
			runewidth.FillRight(b.Label, labelWidth),
			axisSeparator,
			bar,
			strings.Repeat(" ", barWidth-cells),
			valueWidth,
			formatCount(b.Value),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotSplit renders a two-part proportion bar, the text stand-in for a pie chart.
func PlotSplit(w io.Writer, panel Panel, width int, useColor bool) error {
	if _, err := fmt.Fprintln(w, panel.Title); err != nil {
		return err
	}
	total := 0.0
	for _, b := range panel.Bars {
		total += b.Value
	}
	if total <= 0 || len(panel.Bars) != 2 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}
	barWidth := PlotWidthFor(width)
	first := int(math.Round(panel.Bars[0].Value / total * float64(barWidth)))
	firstPart := strings.Repeat(string(fullBlock), first)
	secondPart := strings.Repeat(string(splitFill), barWidth-first)
	if useColor {
		firstPart = colorGreen + firstPart + colorReset
		secondPart = colorRed + secondPart + colorReset
	}
	if _, err := fmt.Fprintln(w, firstPart+secondPart); err != nil {
		return err
	}
	parts := make([]string, 0, len(panel.Bars))
	for i, b := range panel.Bars {
		marker := string(fullBlock)
		if i > 0 {
			marker = string(splitFill)
		}
		parts = append(parts, fmt.Sprintf("%s %s %.1f%% (%s)", marker, b.Label, b.Value/total*100, formatCount(b.Value)))
	}
	if _, err := fmt.Fprintln(w, strings.Join(parts, "  ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// PlotWidthFor clamps the space left for bars to a usable minimum.
func PlotWidthFor(available int) int {
	if available < minPlotWidth {
		return minPlotWidth
	}
	return available
}

// renderBar returns the bar glyphs for frac of width cells and how many cells they use.
func renderBar(frac float64, width int) (string, int) {
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	eighths := int(math.Round(frac * float64(width*8)))
	full := eighths / 8
	rem := eighths % 8
	var b strings.Builder
	b.WriteString(strings.Repeat(string(fullBlock), full))
	cells := full
	if rem > 0 {
		b.WriteRune(partialBlocks[rem])
		cells++
	}
	return b.String(), cells
}

func writeHeading(w io.Writer, title string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(title)))
	return err
}

func formatCount(v float64) string {
	return fmt.Sprintf("%d", int64(math.Round(v)))
}

func colorFor(i int, useColor bool) string {
	if !useColor {
		return ""
	}
	return colorPalette[i%len(colorPalette)].code
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
