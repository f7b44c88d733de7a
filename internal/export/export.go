// Package export writes a run's derived results to a file.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/store"
)

// Format identifies an export encoding.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// Run is the exported document.
type Run struct {
	RunID     string   `json:"run_id" yaml:"run_id"`
	CreatedAt string   `json:"created_at" yaml:"created_at"`
	Corpora   []Record `json:"corpora" yaml:"corpora"`
}

// Record is one corpus in an export.
type Record struct {
	Label     string  `json:"label" yaml:"label"`
	Path      string  `json:"path" yaml:"path"`
	Total     int     `json:"total" yaml:"total"`
	Count     int     `json:"count" yaml:"count"`
	Mean      float64 `json:"mean" yaml:"mean"`
	Median    float64 `json:"median" yaml:"median"`
	Variance  float64 `json:"variance" yaml:"variance"`
	StdDev    float64 `json:"stdev" yaml:"stdev"`
	Buckets   [5]int  `json:"buckets" yaml:"buckets,flow"`
	Unique    int     `json:"unique" yaml:"unique"`
	Duplicate int     `json:"duplicate" yaml:"duplicate"`
	Digit     int     `json:"digit" yaml:"digit"`
	Upper     int     `json:"upper" yaml:"upper"`
	Special   int     `json:"special" yaml:"special"`
}

var csvHeader = []string{
	"run_id", "label", "path", "total", "count", "mean", "median", "variance", "stdev",
	"score_0", "score_1", "score_2", "score_3", "score_4",
	"unique", "duplicate", "digit", "upper", "special",
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported export extension %q (use .json, .yaml, .csv or .db)", filepath.Ext(path))
	}
}

// NewRun stamps reports with a fresh run id.
func NewRun(reports []model.CorpusReport, now time.Time) Run {
	run := Run{
		RunID:     uuid.NewString(),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Corpora:   make([]Record, 0, len(reports)),
	}
	for _, r := range reports {
		run.Corpora = append(run.Corpora, Record{
			Label:     r.Corpus.Label,
			Path:      r.Corpus.Path,
			Total:     r.Total,
			Count:     r.Summary.Count,
			Mean:      r.Summary.Mean,
			Median:    r.Summary.Median,
			Variance:  r.Summary.Variance,
			StdDev:    r.Summary.StdDev,
			Buckets:   r.Frequency,
			Unique:    r.Uniqueness.Unique,
			Duplicate: r.Uniqueness.Duplicate,
			Digit:     r.Classes.Digit,
			Upper:     r.Classes.Upper,
			Special:   r.Classes.Special,
		})
	}
	return run
}

// Write exports reports to path using the format implied by its extension.
// It returns the run id written.
func Write(ctx context.Context, path string, reports []model.CorpusReport) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	now := time.Now()
	run := NewRun(reports, now)

	if format == FormatSQLite {
		st, err := store.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to open export db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				// Best-effort close.
				_ = cerr
			}
		}()
		if err := st.InsertRun(ctx, run.RunID, now, reports); err != nil {
			return "", fmt.Errorf("failed to write export db: %w", err)
		}
		return run.RunID, nil
	}

	data, err := Marshal(run, format)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return run.RunID, nil
}

// Marshal encodes run in a file-based format.
func Marshal(run Run, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatCSV:
		return marshalCSV(run)
	default:
		return nil, fmt.Errorf("format %q cannot be marshaled", format)
	}
}

func marshalCSV(run Run) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range run.Corpora {
		row := []string{
			run.RunID,
			r.Label,
			r.Path,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Count),
			formatFloat(r.Mean),
			formatFloat(r.Median),
			formatFloat(r.Variance),
			formatFloat(r.StdDev),
		}
		for _, n := range r.Buckets {
			row = append(row, strconv.Itoa(n))
		}
		row = append(row,
			strconv.Itoa(r.Unique),
			strconv.Itoa(r.Duplicate),
			strconv.Itoa(r.Digit),
			strconv.Itoa(r.Upper),
			strconv.Itoa(r.Special),
		)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
