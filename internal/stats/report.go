package stats

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/pwscope/internal/corpus"
	"github.com/verte-zerg/pwscope/internal/model"
)

// Report contains every corpus result of one run, in input order.
type Report struct {
	Corpora []model.CorpusReport
}

// LoadFunc reads the password sequence for a corpus path.
type LoadFunc func(path string) ([]string, error)

// Options controls BuildReport.
type Options struct {
	// Load defaults to corpus.Load.
	Load LoadFunc
	// Check preflights a path before any corpus is analyzed. Defaults to corpus.Check.
	Check func(path string) error
	// OnCorpus runs as soon as each corpus has been analyzed.
	OnCorpus func(model.CorpusReport) error
	Logger   logrus.FieldLogger
}

// BuildReport loads and analyzes each corpus in order. Every path is
// preflighted first so an unreadable corpus fails the run before any output.
func BuildReport(ctx context.Context, agg *Aggregator, corpora []model.Corpus, opts Options) (Report, error) {
	load := opts.Load
	if load == nil {
		load = corpus.Load
	}
	check := opts.Check
	if check == nil {
		check = corpus.Check
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, c := range corpora {
		if err := check(c.Path); err != nil {
			return Report{}, &CorpusError{Label: c.Label, Path: c.Path, Err: err}
		}
	}

	report := Report{Corpora: make([]model.CorpusReport, 0, len(corpora))}
	for _, c := range corpora {
		entry := log.WithFields(logrus.Fields{"label": c.Label, "path": c.Path})
		passwords, err := load(c.Path)
		if err != nil {
			return Report{}, &CorpusError{Label: c.Label, Path: c.Path, Err: err}
		}
		entry.WithField("passwords", len(passwords)).Debug("corpus loaded")

		result, err := agg.Analyze(ctx, c, passwords)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Report{}, err
			}
			return Report{}, &CorpusError{Label: c.Label, Path: c.Path, Err: err}
		}
		entry.WithFields(logrus.Fields{
			"mean":   result.Summary.Mean,
			"unique": result.Uniqueness.Unique,
		}).Debug("corpus analyzed")

		if opts.OnCorpus != nil {
			if err := opts.OnCorpus(result); err != nil {
				return Report{}, err
			}
		}
		report.Corpora = append(report.Corpora, result)
	}
	return report, nil
}
