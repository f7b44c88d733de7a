// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/verte-zerg/pwscope/internal/model"
)

const separator = "=========================================================================="

// Summarize computes count, mean, median, sample variance and standard deviation.
// With one score it returns Count, Mean and Median alongside ErrInsufficientData.
func Summarize(scores []int) (model.SummaryStatistics, error) {
	n := len(scores)
	if n == 0 {
		return model.SummaryStatistics{}, ErrEmptyCorpus
	}
	out := model.SummaryStatistics{
		Count:  n,
		Mean:   Mean(scores),
		Median: Median(scores),
	}
	if n < 2 {
		return out, ErrInsufficientData
	}
	var ss float64
	for _, s := range scores {
		d := float64(s) - out.Mean
		ss += d * d
	}
	out.Variance = ss / float64(n-1)
	out.StdDev = math.Sqrt(out.Variance)
	return out, nil
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// Median returns the middle value, averaging the two middles for even counts.
func Median(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// RenderSummary prints the statistics block and bucket breakdown for one corpus.
func RenderSummary(w io.Writer, r model.CorpusReport) error {
	label := r.Corpus.Label
	lines := []string{
		separator,
		fmt.Sprintf("ZXCVBN Analytics for %s:", label),
		"",
		fmt.Sprintf("Number of passwords: %d", r.Summary.Count),
		fmt.Sprintf("Mean zxcvbn score: %s", formatStat(r.Summary.Mean)),
		fmt.Sprintf("Variance of zxcvbn scores: %s", formatStat(r.Summary.Variance)),
		fmt.Sprintf("Median zxcvbn score: %s", formatStat(r.Summary.Median)),
		fmt.Sprintf("Standard deviation of zxcvbn scores: %s", formatStat(r.Summary.StdDev)),
		"",
		separator,
		"",
		separator,
		fmt.Sprintf("ZXCVBN scores for %s:", label),
		"",
	}
	for _, s := range model.Strengths() {
		name, err := s.Label()
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("Score %d (%s): %d", int(s), name, r.Frequency[s]))
	}
	lines = append(lines, "", separator, "", "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderComparison prints one row per corpus with the headline metrics.
func RenderComparison(w io.Writer, reports []model.CorpusReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "No corpora analyzed.")
		return err
	}
	headers := []string{"Corpus", "Count", "Mean", "Median", "StdDev", "Unique", "Digits", "Upper", "Special"}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Corpus.Label,
			fmt.Sprintf("%d", r.Summary.Count),
			fmt.Sprintf("%.2f", r.Summary.Mean),
			fmt.Sprintf("%.1f", r.Summary.Median),
			fmt.Sprintf("%.2f", r.Summary.StdDev),
			percent(r.Uniqueness.Unique, r.Total),
			percent(r.Classes.Digit, r.Total),
			percent(r.Classes.Upper, r.Total),
			percent(r.Classes.Special, r.Total),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatStat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%v", v)
}

func percent(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
