// Package model defines shared data structures.
package model

import "fmt"

// Strength is a zxcvbn strength class, weakest (0) to strongest (4).
type Strength int

// Strength classes.
const (
	VeryWeak Strength = iota
	Weak
	Fair
	Good
	Strong
)

// NumStrengths is the size of the fixed strength domain.
const NumStrengths = 5

var strengthLabels = map[Strength]string{
	VeryWeak: "Very Weak",
	Weak:     "Weak",
	Fair:     "Fair",
	Good:     "Good",
	Strong:   "Strong",
}

// Strengths lists every class in ascending order.
func Strengths() []Strength {
	return []Strength{VeryWeak, Weak, Fair, Good, Strong}
}

// Valid reports whether s is inside the 0..4 domain.
func (s Strength) Valid() bool {
	_, ok := strengthLabels[s]
	return ok
}

// Label returns the qualitative label for s.
func (s Strength) Label() (string, error) {
	label, ok := strengthLabels[s]
	if !ok {
		return "", fmt.Errorf("strength %d out of range 0..%d", int(s), NumStrengths-1)
	}
	return label, nil
}

// Corpus identifies one input file and its display label.
type Corpus struct {
	Path  string
	Label string
}

// ScoreFrequency counts passwords per strength class. All five classes are present.
type ScoreFrequency [NumStrengths]int

// Total returns the sum of all buckets.
func (f ScoreFrequency) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// SummaryStatistics holds sample statistics of a score sequence.
type SummaryStatistics struct {
	Count    int
	Mean     float64
	Median   float64
	Variance float64
	StdDev   float64
}

// UniquenessResult splits a corpus into distinct and repeated entries.
type UniquenessResult struct {
	Unique    int
	Duplicate int
}

// CharacterClassCounts counts passwords containing each character class.
type CharacterClassCounts struct {
	Digit   int
	Upper   int
	Special int
}

// CorpusReport is the full derived result for one corpus.
type CorpusReport struct {
	Corpus     Corpus
	Total      int
	Frequency  ScoreFrequency
	Summary    SummaryStatistics
	Uniqueness UniquenessResult
	Classes    CharacterClassCounts
}

// RunConfig defines a single analysis run.
type RunConfig struct {
	Corpora   []Corpus
	Backend   string
	Export    string
	CacheSize int
	Progress  bool
	PlotWidth int
	Verbose   bool
}
