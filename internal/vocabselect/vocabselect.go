// Package vocabselect picks target vocabulary for lesson generation by
// part-of-speech quota, relaxing its selection constraints step by step
// when the word bank is sparse for the requested level and topic.
package vocabselect

import (
	"context"
	"errors"
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// ErrNoContent means every selection attempt fell short of the minimum
// word threshold. Callers must not substitute content from another
// level or topic.
var ErrNoContent = errors.New("vocabselect: not enough words for level and topic")

// Word is one vocabulary bank entry.
type Word struct {
	Word    string
	POS     string
	Meaning string
}

// WordSource queries the vocabulary bank. Implemented by store.VocabRepo.
type WordSource interface {
	// FetchWords returns up to limit words for a level and topic whose
	// part-of-speech tag matches the given SQL LIKE pattern.
	FetchWords(ctx context.Context, level progression.Level, topicSlug, posPattern string, limit int) ([]Word, error)
}

// PartOfSpeech identifies a quota bucket.
type PartOfSpeech string

const (
	POSNoun      PartOfSpeech = "noun"
	POSVerb      PartOfSpeech = "verb"
	POSAdjective PartOfSpeech = "adjective"
	POSAdverb    PartOfSpeech = "adverb"
	POSAny       PartOfSpeech = "any"
)

// posPatterns maps each bucket to the LIKE pattern its word_type tags
// match ("n. gathering of crops" style dictionary tags).
var posPatterns = map[PartOfSpeech]string{
	POSNoun:      "%n.%",
	POSVerb:      "%v.%",
	POSAdjective: "%adj%",
	POSAdverb:    "%adv%",
	POSAny:       "%",
}

// relaxChains lists, per bucket, the substitute parts of speech tried
// in order when the bucket itself runs short.
var relaxChains = map[PartOfSpeech][]PartOfSpeech{
	POSAdverb:    {POSAdjective, POSAny},
	POSAdjective: {POSNoun, POSAny},
	POSVerb:      {POSAny},
	POSNoun:      {POSAny},
}

type quota struct {
	pos   PartOfSpeech
	count int
}

// quotaPlan is the target composition of a lesson word set.
var quotaPlan = []quota{
	{POSNoun, 3},
	{POSVerb, 3},
	{POSAdjective, 2},
	{POSAdverb, 2},
}

// MinWords is the smallest word set worth generating a lesson from.
const MinWords = 2

// Attempt is one rung of the cascade: which topics to draw from and
// whether the part-of-speech quotas may relax into their chains.
type Attempt struct {
	Topics []string
	Strict bool
}

// Attempts builds the cascade for a topic pair, most specific first.
// The two secondary rungs are present only when a secondary topic is.
func Attempts(primaryTopic, secondaryTopic string) []Attempt {
	attempts := []Attempt{
		{Topics: []string{primaryTopic}, Strict: true},
		{Topics: []string{primaryTopic}},
	}
	if secondaryTopic != "" {
		attempts = append(attempts,
			Attempt{Topics: []string{primaryTopic, secondaryTopic}},
			Attempt{Topics: []string{secondaryTopic}},
		)
	}
	return attempts
}

// Selector runs the cascade against a word source.
type Selector struct {
	source WordSource
}

func NewSelector(source WordSource) *Selector {
	return &Selector{source: source}
}

// Select returns target words for a lesson at the given level, drawn
// from the primary topic and, when the bank is sparse, progressively
// from the secondary topic and relaxed part-of-speech buckets. It
// returns ErrNoContent when no attempt reaches MinWords.
func (s *Selector) Select(ctx context.Context, level progression.Level, primaryTopic, secondaryTopic string) ([]Word, error) {
	words, err := Run(ctx, Attempts(primaryTopic, secondaryTopic), MinWords,
		func(ctx context.Context, attempt Attempt) ([]Word, error) {
			return s.collect(ctx, level, attempt)
		})
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: level %s topic %q", ErrNoContent, level, primaryTopic)
	}
	return words, nil
}

// collect fills each quota bucket for one attempt. A bucket short of
// quota walks its relaxation chain unless the attempt is strict;
// partial buckets are kept, not discarded.
func (s *Selector) collect(ctx context.Context, level progression.Level, attempt Attempt) ([]Word, error) {
	var results []Word
	seen := make(map[string]bool)

	for _, q := range quotaPlan {
		bucket, err := s.fill(ctx, level, attempt.Topics, posPatterns[q.pos], q.count, seen)
		if err != nil {
			return nil, err
		}
		if len(bucket) < q.count && !attempt.Strict {
			for _, relaxed := range relaxChains[q.pos] {
				more, err := s.fill(ctx, level, attempt.Topics, posPatterns[relaxed], q.count-len(bucket), seen)
				if err != nil {
					return nil, err
				}
				bucket = append(bucket, more...)
				if len(bucket) >= q.count {
					break
				}
			}
		}
		results = append(results, bucket...)
	}
	return results, nil
}

// fill draws up to want unseen words matching one pattern across the
// attempt's topics.
func (s *Selector) fill(ctx context.Context, level progression.Level, topics []string, pattern string, want int, seen map[string]bool) ([]Word, error) {
	var out []Word
	for _, topic := range topics {
		if len(out) >= want {
			break
		}
		words, err := s.source.FetchWords(ctx, level, topic, pattern, want)
		if err != nil {
			return nil, fmt.Errorf("fetch words for %q: %w", topic, err)
		}
		for _, w := range words {
			if seen[w.Word] || len(out) >= want {
				continue
			}
			seen[w.Word] = true
			out = append(out, w)
		}
	}
	return out, nil
}
