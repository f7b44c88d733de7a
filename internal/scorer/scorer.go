// Package scorer adapts password strength estimators.
package scorer

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nbutton23/zxcvbn-go"

	"github.com/verte-zerg/pwscope/internal/model"
)

// DefaultCacheSize is the default number of memoized passwords.
const DefaultCacheSize = 65536

// MaxScoredRunes caps how much of a password zxcvbn sees. Matching cost grows
// with the cube of the length, so longer inputs are scored on their prefix.
const MaxScoredRunes = 256

// Result is the outcome of scoring one password.
type Result struct {
	Score     model.Strength
	Entropy   float64
	CrackTime string
}

// Scorer maps a non-empty password to a strength class.
type Scorer interface {
	Score(password string) Result
}

// Func adapts a plain function to Scorer.
type Func func(password string) Result

// Score implements Scorer.
func (f Func) Score(password string) Result {
	return f(password)
}

// ZXCVBN scores passwords with zxcvbn-go.
type ZXCVBN struct {
	userInputs []string
}

// NewZXCVBN returns a zxcvbn scorer. userInputs are penalized as dictionary words.
func NewZXCVBN(userInputs ...string) *ZXCVBN {
	return &ZXCVBN{userInputs: userInputs}
}

// Score implements Scorer.
func (z *ZXCVBN) Score(password string) Result {
	match := zxcvbn.PasswordStrength(truncateRunes(password, MaxScoredRunes), z.userInputs)
	return Result{
		Score:     model.Strength(match.Score),
		Entropy:   match.Entropy,
		CrackTime: match.CrackTimeDisplay,
	}
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Cached memoizes another Scorer. Corpora often repeat passwords.
type Cached struct {
	next   Scorer
	cache  *lru.Cache[string, Result]
	hits   int
	misses int
}

// NewCached wraps next with an LRU of the given size.
func NewCached(next Scorer, size int) (*Cached, error) {
	cache, err := lru.New[string, Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create score cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Score implements Scorer.
func (c *Cached) Score(password string) Result {
	if res, ok := c.cache.Get(password); ok {
		c.hits++
		return res
	}
	c.misses++
	res := c.next.Score(password)
	c.cache.Add(password, res)
	return res
}

// Stats returns cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// New builds the default scorer, memoized when cacheSize > 0.
func New(cacheSize int) (Scorer, error) {
	base := NewZXCVBN()
	if cacheSize <= 0 {
		return base, nil
	}
	return NewCached(base, cacheSize)
}
