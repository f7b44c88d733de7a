// Package statsui provides the Bubble Tea corpus comparison interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/stats"
)

const (
	tabStrength = iota
	tabUniqueness
	tabCharacters
	tabSummary
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea comparison UI.
type Model struct {
	reports []model.CorpusReport

	tabs      []string
	activeTab int
	viewports []viewport.Model
	summary   table.Model

	width  int
	height int
}

// NewModel constructs a comparison UI over already computed reports.
func NewModel(reports []model.CorpusReport) *Model {
	m := &Model{
		reports: reports,
		tabs:    []string{"Strength", "Uniqueness", "Characters", "Summary"},
	}
	m.initViewports()
	m.summary = buildSummaryTable(reports, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "1", "2", "3", "4":
			m.activeTab = int(msg.String()[0] - '1')
			m.syncFocus()
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeTab == tabSummary {
				m.summary.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSummary {
				m.summary.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSummary {
				var cmd tea.Cmd
				m.summary, cmd = m.summary.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.summary = buildSummaryTable(m.reports, m.width, vpHeight)
	m.syncFocus()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.syncFocus()
}

func (m *Model) syncFocus() {
	if m.activeTab == tabSummary {
		m.summary.Focus()
	} else {
		m.summary.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	labels := make([]string, 0, len(m.reports))
	for _, r := range m.reports {
		labels = append(labels, r.Corpus.Label)
	}
	summary := truncateLine(fmt.Sprintf("Corpora: %s", strings.Join(labels, ", ")), m.width)
	return tabs + "\n" + padLines(headerStyle.Render(summary), m.width)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right/1-4  Scroll: up/down/pgup/pgdn  Quit: q")
}

func (m *Model) renderBody(height int) string {
	if len(m.reports) == 0 {
		return fitLines("No corpora analyzed.", m.width, height)
	}
	if m.activeTab == tabSummary {
		cards := renderSummaryCards(m.reports, m.width)
		view := tableMutedStyle.Render(m.summary.View())
		return fitLines(cards+"\n"+view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabStrength].SetContent(renderFamily(stats.FamilyStrength, m.reports, width))
	m.viewports[tabUniqueness].SetContent(renderFamily(stats.FamilyUniqueness, m.reports, width))
	m.viewports[tabCharacters].SetContent(renderFamily(stats.FamilyCharacters, m.reports, width))
}

func renderFamily(f stats.Family, reports []model.CorpusReport, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderFamily(&buf, f, reports, stats.PanelOptions{Width: width, ForceColor: true}); err != nil {
		return fmt.Sprintf("Failed to render %s: %v", f.Title(), err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderSummaryCards(reports []model.CorpusReport, width int) string {
	totalPasswords := 0
	totalUnique := 0
	bestLabel := ""
	bestMean := -1.0
	for _, r := range reports {
		totalPasswords += r.Total
		totalUnique += r.Uniqueness.Unique
		if r.Summary.Mean > bestMean {
			bestMean = r.Summary.Mean
			bestLabel = r.Corpus.Label
		}
	}
	cards := []string{
		metricCard("Corpora", fmt.Sprintf("%d", len(reports))),
		metricCard("Passwords", humanize.Comma(int64(totalPasswords))),
		metricCard("Distinct", humanize.Comma(int64(totalUnique))),
		metricCard("Strongest", fmt.Sprintf("%s (%.2f)", bestLabel, bestMean)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildSummaryTable(reports []model.CorpusReport, width, height int) table.Model {
	columns, rows := buildSummaryTableData(reports)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-lipgloss.Height(renderSummaryCards(reports, width))-2)),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	t.SetStyles(summaryTableStyles())
	return t
}

func buildSummaryTableData(reports []model.CorpusReport) ([]table.Column, []table.Row) {
	labelWidth := len("Corpus")
	for _, r := range reports {
		labelWidth = maxInt(labelWidth, lipgloss.Width(r.Corpus.Label))
	}
	columns := []table.Column{
		{Title: "Corpus", Width: minInt(labelWidth, 24)},
		{Title: "Count", Width: 10},
		{Title: "Mean", Width: 6},
		{Title: "Median", Width: 6},
		{Title: "Variance", Width: 8},
		{Title: "StdDev", Width: 6},
		{Title: "Unique", Width: 10},
		{Title: "Dupes", Width: 10},
		{Title: "Digits", Width: 10},
		{Title: "Upper", Width: 10},
		{Title: "Special", Width: 10},
	}
	rows := make([]table.Row, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, table.Row{
			r.Corpus.Label,
			humanize.Comma(int64(r.Summary.Count)),
			fmt.Sprintf("%.2f", r.Summary.Mean),
			fmt.Sprintf("%.1f", r.Summary.Median),
			fmt.Sprintf("%.3f", r.Summary.Variance),
			fmt.Sprintf("%.3f", r.Summary.StdDev),
			humanize.Comma(int64(r.Uniqueness.Unique)),
			humanize.Comma(int64(r.Uniqueness.Duplicate)),
			humanize.Comma(int64(r.Classes.Digit)),
			humanize.Comma(int64(r.Classes.Upper)),
			humanize.Comma(int64(r.Classes.Special)),
		})
	}
	return columns, rows
}

func summaryTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
