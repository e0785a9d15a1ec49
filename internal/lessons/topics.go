package lessons

import (
	"math/rand"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// anchorTopicsByLevel lists the topics a lesson can be anchored on per
// level. Levels without an entry fall back to the A2 list.
var anchorTopicsByLevel = map[progression.Level][]string{
	progression.LevelA1: {"daily-life", "emotions", "communication-language", "food-cooking", "body-health", "nature-environment"},
	progression.LevelA2: {"daily-life", "emotions", "communication-language", "food-cooking", "body-health", "nature-environment"},
	progression.LevelB1: {"education-learning", "work-business", "personal-traits", "social-states", "nature-environment"},
	progression.LevelB2: {"education-learning", "work-business", "arts-media", "technology-digital", "abstract-concepts"},
	progression.LevelC1: {"abstract-concepts", "social-states", "technology-digital", "law-ethics", "politics-society", "spirituality-beliefs"},
}

// secondaryTopics enrich a lesson's context without replacing its anchor.
var secondaryTopics = []string{
	"daily-life",
	"education-learning",
	"work-business",
	"communication-language",
}

// selectTopics picks an anchor topic for the level plus a secondary
// topic that is never equal to the anchor. The secondary topic may be
// empty when no distinct candidate exists.
func selectTopics(rng *rand.Rand, level progression.Level) (primary, secondary string) {
	anchors, ok := anchorTopicsByLevel[level]
	if !ok {
		anchors = anchorTopicsByLevel[progression.LevelA2]
	}
	primary = anchors[rng.Intn(len(anchors))]

	var candidates []string
	for _, t := range secondaryTopics {
		if t != primary {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) > 0 {
		secondary = candidates[rng.Intn(len(candidates))]
	}
	return primary, secondary
}
