package render

import (
	"bytes"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/stats"
	"github.com/verte-zerg/pwscope/internal/statsui"
)

func reports() []model.CorpusReport {
	return []model.CorpusReport{{
		Corpus:     model.Corpus{Label: "only"},
		Total:      3,
		Frequency:  model.ScoreFrequency{2, 0, 0, 1, 0},
		Summary:    model.SummaryStatistics{Count: 3, Mean: 1},
		Uniqueness: model.UniquenessResult{Unique: 2, Duplicate: 1},
		Classes:    model.CharacterClassCounts{Digit: 2, Upper: 1, Special: 1},
	}}
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{"": BackendText, "TEXT": BackendText, " tui ": BackendTUI, "none": BackendNone} {
		got, err := ParseBackend(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseBackend("TkAgg")
	assert.ErrorIs(t, err, stats.ErrConfiguration)
}

func TestTextBackend(t *testing.T) {
	var buf bytes.Buffer
	r := New(BackendText, &buf, WithPanelOptions(stats.PanelOptions{Width: 60}))

	require.NoError(t, r.Panels(reports()))

	out := buf.String()
	assert.Contains(t, out, "Password Strength Distribution (only)")
	assert.Contains(t, out, "Uniqueness of Passwords (only)")
	assert.Contains(t, out, "Character Type Distribution (only)")
}

func TestNoneBackendWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	r := New(BackendNone, &buf)

	require.NoError(t, r.Panels(reports()))
	assert.Empty(t, buf.String())
}

func TestSummaryAlwaysPrints(t *testing.T) {
	var buf bytes.Buffer
	r := New(BackendNone, &buf)

	require.NoError(t, r.Summary(reports()[0]))
	assert.Contains(t, buf.String(), "Score 3 (Good): 1")
}

func TestTUIBackendUsesRunner(t *testing.T) {
	var got tea.Model
	r := New(BackendTUI, &bytes.Buffer{}, WithProgramRunner(func(m tea.Model) error {
		got = m
		return nil
	}))

	require.NoError(t, r.Panels(reports()))
	_, ok := got.(*statsui.Model)
	assert.True(t, ok)

	failing := New(BackendTUI, &bytes.Buffer{}, WithProgramRunner(func(tea.Model) error {
		return errors.New("no tty")
	}))
	assert.ErrorContains(t, failing.Panels(reports()), "no tty")
}

func TestRenderDoesNotMutateReports(t *testing.T) {
	in := reports()
	before := in[0]
	r := New(BackendText, &bytes.Buffer{}, WithPanelOptions(stats.PanelOptions{Width: 40}))
	require.NoError(t, r.Panels(in))
	assert.Equal(t, before, in[0])
}
