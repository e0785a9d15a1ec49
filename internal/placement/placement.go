// Package placement scores the one-time level test that seeds a
// learner's progression record: static answer sheets for reading and
// listening, a progressive three-essay oracle judgment for writing, and
// a hybrid audio assessment per level for speaking. Each section maps
// its 0-100 score onto a CEFR band; saving writes the per-skill levels
// with their floor experience.
package placement

import (
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/scoring"
)

// sampleLevels are the bands a placement section samples. The test
// climbs from basic to advanced; everything in between is interpolated
// by the final banding.
var sampleLevels = []progression.Level{
	progression.LevelA1,
	progression.LevelB1,
	progression.LevelC1,
}

// Sheet holds objective answers keyed by the sampled level.
type Sheet map[progression.Level][]string

// ObjectiveScore compares an answer sheet to its key and returns the
// percentage correct, truncated. Levels the learner never answered are
// not counted against them; within an answered level every key item
// counts.
func ObjectiveScore(answers, key Sheet) int {
	correct, total := 0, 0
	for level, given := range answers {
		want, ok := key[level]
		if !ok {
			continue
		}
		n := len(given)
		if len(want) < n {
			n = len(want)
		}
		for i := 0; i < n; i++ {
			if given[i] == want[i] {
				correct++
			}
		}
		total += len(want)
	}
	if total == 0 {
		return 0
	}
	return int(float64(correct) / float64(total) * 100)
}

// DetermineLevel maps a 0-100 placement score onto a CEFR band. C2 is
// never assigned by placement; it must be earned through exams.
func DetermineLevel(score int) progression.Level {
	switch {
	case score >= 85:
		return progression.LevelC1
	case score >= 65:
		return progression.LevelB2
	case score >= 45:
		return progression.LevelB1
	case score >= 25:
		return progression.LevelA2
	default:
		return progression.LevelA1
	}
}

// Outcome is one placement section's result.
type Outcome struct {
	Score scoring.Score
	Level progression.Level
}

func outcomeOf(score scoring.Score) Outcome {
	return Outcome{Score: score, Level: DetermineLevel(score.Value)}
}
