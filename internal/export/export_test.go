package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/store"
)

func sampleReports() []model.CorpusReport {
	return []model.CorpusReport{
		{
			Corpus:     model.Corpus{Path: "rockyou.txt", Label: "rockyou"},
			Total:      3,
			Frequency:  model.ScoreFrequency{2, 0, 0, 1, 0},
			Summary:    model.SummaryStatistics{Count: 3, Mean: 1, Median: 0, Variance: 3, StdDev: 1.7320508075688772},
			Uniqueness: model.UniquenessResult{Unique: 2, Duplicate: 1},
			Classes:    model.CharacterClassCounts{Digit: 2, Upper: 1, Special: 1},
		},
	}
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"out.json":    FormatJSON,
		"out.YAML":    FormatYAML,
		"out.yml":     FormatYAML,
		"out.csv":     FormatCSV,
		"out.db":      FormatSQLite,
		"out.sqlite3": FormatSQLite,
	}
	for path, want := range cases {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectFormat("out.txt")
	assert.ErrorContains(t, err, "unsupported export extension")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	runID, err := Write(context.Background(), path, sampleReports())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var run Run
	require.NoError(t, json.Unmarshal(data, &run))
	assert.Equal(t, runID, run.RunID)
	_, err = uuid.Parse(run.RunID)
	assert.NoError(t, err)
	require.Len(t, run.Corpora, 1)
	assert.Equal(t, [5]int{2, 0, 0, 1, 0}, run.Corpora[0].Buckets)
	assert.Equal(t, 2, run.Corpora[0].Unique)
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	_, err := Write(context.Background(), path, sampleReports())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var run Run
	require.NoError(t, yaml.Unmarshal(data, &run))
	require.Len(t, run.Corpora, 1)
	assert.Equal(t, "rockyou", run.Corpora[0].Label)
	assert.InDelta(t, 1.7320508075688772, run.Corpora[0].StdDev, 1e-12)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")

	_, err := Write(context.Background(), path, sampleReports())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "rockyou", rows[1][1])
	assert.Equal(t, "1", rows[1][5])
	assert.Equal(t, "2", rows[1][9])
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	ctx := context.Background()

	runID, err := Write(ctx, path, sampleReports())
	require.NoError(t, err)

	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	got, err := st.ListCorpusResults(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, sampleReports(), got)
}

func TestNewRunKeepsOrder(t *testing.T) {
	reports := append(sampleReports(), model.CorpusReport{Corpus: model.Corpus{Label: "second"}})
	run := NewRun(reports, time.Unix(0, 0))
	require.Len(t, run.Corpora, 2)
	assert.Equal(t, "second", run.Corpora[1].Label)
	assert.Equal(t, "1970-01-01T00:00:00Z", run.CreatedAt)
}
