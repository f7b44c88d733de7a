// Package render draws comparative panels through a chosen backend.
package render

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/stats"
	"github.com/verte-zerg/pwscope/internal/statsui"
)

// Backend selects how panels are presented.
type Backend string

// Supported backends.
const (
	BackendText Backend = "text"
	BackendTUI  Backend = "tui"
	BackendNone Backend = "none"
)

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendText, BackendTUI, BackendNone:
		return b, nil
	case "":
		return BackendText, nil
	default:
		return "", fmt.Errorf("%w: unknown backend %q (use text, tui or none)", stats.ErrConfiguration, name)
	}
}

// ProgramRunner runs a Bubble Tea model to completion.
type ProgramRunner func(m tea.Model) error

// Renderer presents finished reports. It never alters them.
type Renderer struct {
	backend Backend
	out     io.Writer
	opts    stats.PanelOptions
	run     ProgramRunner
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPanelOptions sets text panel options.
func WithPanelOptions(opts stats.PanelOptions) Option {
	return func(r *Renderer) {
		r.opts = opts
	}
}

// WithProgramRunner overrides how the interactive backend runs its program.
func WithProgramRunner(run ProgramRunner) Option {
	return func(r *Renderer) {
		r.run = run
	}
}

// New builds a Renderer writing text output to out.
func New(backend Backend, out io.Writer, options ...Option) *Renderer {
	r := &Renderer{
		backend: backend,
		out:     out,
		run:     runAltScreen,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Backend returns the configured backend.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// Summary prints the per-corpus statistics block.
func (r *Renderer) Summary(report model.CorpusReport) error {
	return stats.RenderSummary(r.out, report)
}

// Panels presents all corpora together so scales are shared.
func (r *Renderer) Panels(reports []model.CorpusReport) error {
	switch r.backend {
	case BackendNone:
		return nil
	case BackendText:
		if err := stats.RenderComparison(r.out, reports); err != nil {
			return err
		}
		return stats.RenderPanels(r.out, reports, r.opts)
	case BackendTUI:
		if err := r.run(statsui.NewModel(reports)); err != nil {
			return fmt.Errorf("failed to run comparison TUI: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown backend %q", stats.ErrConfiguration, r.backend)
	}
}

func runAltScreen(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
