package progression

import (
	"fmt"
	"math"
)

// Level is a CEFR band. Levels are strictly ordered A1 < A2 < B1 < B2 < C1 < C2.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// levelOrder fixes the promotion sequence.
var levelOrder = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// xpRange is the closed cumulative experience interval for a level.
type xpRange struct {
	floor   int
	ceiling int
}

// levelThresholds holds the per-level experience bounds. C2 is terminal and
// unbounded above.
var levelThresholds = map[Level]xpRange{
	LevelA1: {0, 499},
	LevelA2: {500, 1499},
	LevelB1: {1500, 3499},
	LevelB2: {3500, 7499},
	LevelC1: {7500, 15499},
	LevelC2: {15500, math.MaxInt},
}

// multipliers converts a 0-100 activity score into experience. Harder
// activities pay more per point, so advanced learners are not penalized
// for slower per-activity accrual.
var multipliers = map[Level]float64{
	LevelA1: 0.3,
	LevelA2: 0.4,
	LevelB1: 0.5,
	LevelB2: 0.6,
	LevelC1: 0.7,
	LevelC2: 0.8,
}

// AllLevels returns the levels in ascending order.
func AllLevels() []Level {
	out := make([]Level, len(levelOrder))
	copy(out, levelOrder)
	return out
}

// ParseLevel validates a level name.
func ParseLevel(name string) (Level, error) {
	if _, ok := levelThresholds[Level(name)]; ok {
		return Level(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Floor returns the inclusive lower experience bound for the level.
func (l Level) Floor() int { return levelThresholds[l].floor }

// Ceiling returns the inclusive upper experience bound for the level.
// For C2 this is effectively unbounded.
func (l Level) Ceiling() int { return levelThresholds[l].ceiling }

// Multiplier returns the difficulty multiplier used for experience deltas.
func (l Level) Multiplier() float64 { return multipliers[l] }

// IsMax reports whether the level is the terminal C2 band.
func (l Level) IsMax() bool { return l == LevelC2 }

// Next returns the successor level, or false if the level is C2.
func (l Level) Next() (Level, bool) {
	for i, cur := range levelOrder {
		if cur == l && i < len(levelOrder)-1 {
			return levelOrder[i+1], true
		}
	}
	return l, false
}

func (l Level) String() string { return string(l) }
