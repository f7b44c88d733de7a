package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/pwscope/internal/model"
)

func TestSummarize(t *testing.T) {
	got, err := Summarize([]int{0, 1, 2, 3, 4, 4})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if got.Count != 6 {
		t.Fatalf("expected count 6, got %d", got.Count)
	}
	if math.Abs(got.Mean-14.0/6.0) > 1e-9 {
		t.Fatalf("unexpected mean: %v", got.Mean)
	}
	if got.Median != 2.5 {
		t.Fatalf("expected median 2.5, got %v", got.Median)
	}
	// sum of squared deviations = 14.8333..., n-1 = 5
	wantVar := 0.0
	for _, s := range []int{0, 1, 2, 3, 4, 4} {
		d := float64(s) - 14.0/6.0
		wantVar += d * d
	}
	wantVar /= 5
	if math.Abs(got.Variance-wantVar) > 1e-9 {
		t.Fatalf("expected variance %v, got %v", wantVar, got.Variance)
	}
	if math.Abs(got.StdDev-math.Sqrt(wantVar)) > 1e-9 {
		t.Fatalf("unexpected stdev: %v", got.StdDev)
	}
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize(nil); err != ErrEmptyCorpus {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	got, err := Summarize([]int{3})
	if err != ErrInsufficientData {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if got.Count != 1 || got.Mean != 3 || got.Median != 3 {
		t.Fatalf("unexpected partial summary: %+v", got)
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []int{4, 0, 2}
	if m := Median(in); m != 2 {
		t.Fatalf("expected median 2, got %v", m)
	}
	if in[0] != 4 || in[1] != 0 || in[2] != 2 {
		t.Fatalf("input was modified: %v", in)
	}
}

func TestRenderSummaryOrder(t *testing.T) {
	var buf bytes.Buffer
	report := model.CorpusReport{
		Corpus:    model.Corpus{Label: "rockyou"},
		Total:     3,
		Frequency: model.ScoreFrequency{2, 0, 0, 1, 0},
		Summary:   model.SummaryStatistics{Count: 3, Mean: 1, Median: 0, Variance: 3, StdDev: math.Sqrt(3)},
	}
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	order := []string{
		"ZXCVBN Analytics for rockyou:",
		"Number of passwords: 3",
		"Mean zxcvbn score: 1.0",
		"Variance of zxcvbn scores: 3.0",
		"Median zxcvbn score: 0.0",
		"Standard deviation of zxcvbn scores: 1.7320508075688772",
		"Score 0 (Very Weak): 2",
		"Score 1 (Weak): 0",
		"Score 2 (Fair): 0",
		"Score 3 (Good): 1",
		"Score 4 (Strong): 0",
	}
	pos := 0
	for _, want := range order {
		idx := strings.Index(out[pos:], want)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", want, pos, out)
		}
		pos += idx + len(want)
	}
}

func TestRenderComparison(t *testing.T) {
	var buf bytes.Buffer
	reports := []model.CorpusReport{
		{
			Corpus:     model.Corpus{Label: "a"},
			Total:      4,
			Summary:    model.SummaryStatistics{Count: 4, Mean: 1.5},
			Uniqueness: model.UniquenessResult{Unique: 2, Duplicate: 2},
			Classes:    model.CharacterClassCounts{Digit: 4},
		},
	}
	if err := RenderComparison(&buf, reports); err != nil {
		t.Fatalf("render comparison: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Corpus", "1.50", "50.0%", "100.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
