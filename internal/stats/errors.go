package stats

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/pwscope/internal/model"
)

var (
	// ErrConfiguration reports invalid run arguments. Nothing has been read yet.
	ErrConfiguration = errors.New("configuration error")
	// ErrEmptyCorpus reports a corpus with no scorable passwords.
	ErrEmptyCorpus = errors.New("corpus has no scorable passwords")
	// ErrInsufficientData reports a corpus too small for sample variance.
	ErrInsufficientData = errors.New("sample variance needs at least two passwords")
	// ErrScoreOutOfRange reports a scorer result outside 0..4.
	ErrScoreOutOfRange = errors.New("score out of range")
)

// CorpusError ties a failure to the corpus that caused it.
type CorpusError struct {
	Label string
	Path  string
	Err   error
}

func (e *CorpusError) Error() string {
	return fmt.Sprintf("corpus %q (%s): %v", e.Label, e.Path, e.Err)
}

func (e *CorpusError) Unwrap() error {
	return e.Err
}

// ValidateCorpora pairs input files with labels. It performs no I/O.
func ValidateCorpora(files, labels []string) ([]model.Corpus, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one input file is required", ErrConfiguration)
	}
	if len(files) != len(labels) {
		return nil, fmt.Errorf("%w: the number of input files (%d) and labels (%d) must be the same", ErrConfiguration, len(files), len(labels))
	}
	corpora := make([]model.Corpus, len(files))
	for i := range files {
		if files[i] == "" {
			return nil, fmt.Errorf("%w: input file %d is empty", ErrConfiguration, i+1)
		}
		corpora[i] = model.Corpus{Path: files[i], Label: labels[i]}
	}
	return corpora, nil
}
