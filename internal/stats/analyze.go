package stats

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/pwscope/internal/model"
	"github.com/verte-zerg/pwscope/internal/progress"
	"github.com/verte-zerg/pwscope/internal/scorer"
)

// SpecialChars is the fixed special-character class.
const SpecialChars = "!@#$%^&*()"

// Aggregator scores passwords and buckets them by strength.
type Aggregator struct {
	scorer   scorer.Scorer
	progress progress.Reporter
}

// NewAggregator returns an Aggregator. A nil reporter disables progress.
func NewAggregator(s scorer.Scorer, p progress.Reporter) *Aggregator {
	if p == nil {
		p = progress.Nop{}
	}
	return &Aggregator{scorer: s, progress: p}
}

// Score scores every password and returns the bucket table and the raw scores.
func (a *Aggregator) Score(ctx context.Context, label string, passwords []string) (model.ScoreFrequency, []int, error) {
	var freq model.ScoreFrequency
	scores := make([]int, 0, len(passwords))
	a.progress.Start(label, len(passwords))
	defer a.progress.Done()
	for _, pw := range passwords {
		if err := ctx.Err(); err != nil {
			return freq, nil, err
		}
		score, err := a.scoreOne(pw)
		if err != nil {
			return freq, nil, err
		}
		freq[score]++
		scores = append(scores, int(score))
		a.progress.Advance(1)
	}
	return freq, scores, nil
}

func (a *Aggregator) scoreOne(pw string) (model.Strength, error) {
	res := a.scorer.Score(pw)
	if !res.Score.Valid() {
		return 0, fmt.Errorf("%w: scorer returned %d", ErrScoreOutOfRange, int(res.Score))
	}
	return res.Score, nil
}

// Analyze scores a corpus and derives every metric family from the same
// password slice. The returned report is usable up to the point of any
// statistics error.
func (a *Aggregator) Analyze(ctx context.Context, c model.Corpus, passwords []string) (model.CorpusReport, error) {
	report := model.CorpusReport{Corpus: c, Total: len(passwords)}

	freq, scores, err := a.Score(ctx, c.Label, passwords)
	if err != nil {
		return report, err
	}
	report.Frequency = freq
	report.Uniqueness = Uniqueness(passwords)
	report.Classes = CharacterClasses(passwords)

	summary, err := Summarize(scores)
	report.Summary = summary
	return report, err
}

// Uniqueness counts distinct and repeated entries.
func Uniqueness(passwords []string) model.UniquenessResult {
	seen := make(map[string]struct{}, len(passwords))
	for _, pw := range passwords {
		seen[pw] = struct{}{}
	}
	return model.UniquenessResult{
		Unique:    len(seen),
		Duplicate: len(passwords) - len(seen),
	}
}

// CharacterClasses counts passwords containing a digit, an uppercase letter
// and a special character. Each class is counted independently.
func CharacterClasses(passwords []string) model.CharacterClassCounts {
	var counts model.CharacterClassCounts
	for _, pw := range passwords {
		if strings.IndexFunc(pw, isDigit) >= 0 {
			counts.Digit++
		}
		if strings.IndexFunc(pw, unicode.IsUpper) >= 0 {
			counts.Upper++
		}
		if strings.ContainsAny(pw, SpecialChars) {
			counts.Special++
		}
	}
	return counts
}

// isDigit accepts decimal digits and the Latin-1 superscript digits.
func isDigit(r rune) bool {
	return unicode.IsDigit(r) || r == '¹' || r == '²' || r == '³'
}
