// Package selector draws the words a typing test is made of.
package selector

import (
	"errors"
	"math/rand"
	"strings"
)

// ErrEmptyCorpus is returned when a draw is requested from an empty corpus.
var ErrEmptyCorpus = errors.New("corpus is empty")

// ErrInvalidCount is returned when fewer than one word is requested.
var ErrInvalidCount = errors.New("word count must be at least 1")

// Selector picks words uniformly at random, with replacement. Repeats are
// intentional: natural text repeats common words.
type Selector struct {
	rnd *rand.Rand
}

// New returns a Selector using the given random source. The source is
// injected so draws are replayable under a fixed seed.
func New(rnd *rand.Rand) *Selector {
	return &Selector{rnd: rnd}
}

// Pick draws count words from corpus with replacement.
func (s *Selector) Pick(corpus []string, count int) ([]string, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		words = append(words, corpus[s.rnd.Intn(len(corpus))])
	}
	return words, nil
}

// Text draws count words and joins them with single spaces into the target
// text of one session.
func (s *Selector) Text(corpus []string, count int) (string, error) {
	words, err := s.Pick(corpus, count)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}
