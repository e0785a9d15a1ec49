package placement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
)

// fakeRepo records seeded progression records.
type fakeRepo struct {
	seeded map[string]map[progression.Skill]progression.Level
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{seeded: make(map[string]map[progression.Skill]progression.Level)}
}

func (f *fakeRepo) GetRecord(_ context.Context, learnerID string) (*progression.Record, error) {
	levels, ok := f.seeded[learnerID]
	if !ok {
		return nil, progression.ErrNoRecord
	}
	rec := &progression.Record{LearnerID: learnerID, Skills: make(map[progression.Skill]progression.SkillState)}
	for skill, level := range levels {
		rec.Skills[skill] = progression.SkillState{Level: level, XP: level.Floor()}
	}
	return rec, nil
}

func (f *fakeRepo) GetSkill(_ context.Context, learnerID string, skill progression.Skill) (progression.SkillState, error) {
	levels, ok := f.seeded[learnerID]
	if !ok {
		return progression.SkillState{}, progression.ErrNoRecord
	}
	return progression.SkillState{Level: levels[skill], XP: levels[skill].Floor()}, nil
}

func (f *fakeRepo) UpdateSkill(_ context.Context, _ string, _ progression.Skill, _ func(progression.SkillState) (progression.SkillState, error)) (progression.SkillState, error) {
	return progression.SkillState{}, errors.New("not used in placement tests")
}

func (f *fakeRepo) SeedRecord(_ context.Context, learnerID string, levels map[progression.Skill]progression.Level) error {
	f.seeded[learnerID] = levels
	return nil
}

func TestObjectiveScore(t *testing.T) {
	key := Sheet{
		progression.LevelA1: {"a", "b", "c", "d", "e"},
		progression.LevelB1: {"a", "a", "a", "a", "a"},
	}

	t.Run("all correct", func(t *testing.T) {
		assert.Equal(t, 100, ObjectiveScore(key, key))
	})

	t.Run("partial", func(t *testing.T) {
		answers := Sheet{
			progression.LevelA1: {"a", "b", "c", "x", "x"},
			progression.LevelB1: {"a", "a", "x", "x", "x"},
		}
		// 5 of 10.
		assert.Equal(t, 50, ObjectiveScore(answers, key))
	})

	t.Run("unanswered level not counted", func(t *testing.T) {
		answers := Sheet{progression.LevelA1: {"a", "b", "c", "d", "e"}}
		assert.Equal(t, 100, ObjectiveScore(answers, key))
	})

	t.Run("short answer row counts full key", func(t *testing.T) {
		answers := Sheet{progression.LevelA1: {"a", "b"}}
		// 2 correct of the 5 key items.
		assert.Equal(t, 40, ObjectiveScore(answers, key))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, ObjectiveScore(Sheet{}, key))
		assert.Equal(t, 0, ObjectiveScore(key, Sheet{}))
	})
}

func TestDetermineLevel(t *testing.T) {
	cases := []struct {
		score int
		want  progression.Level
	}{
		{100, progression.LevelC1},
		{85, progression.LevelC1},
		{84, progression.LevelB2},
		{65, progression.LevelB2},
		{64, progression.LevelB1},
		{45, progression.LevelB1},
		{44, progression.LevelA2},
		{25, progression.LevelA2},
		{24, progression.LevelA1},
		{0, progression.LevelA1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetermineLevel(tc.score), "score %d", tc.score)
	}
}

func newTestService(mock *llm.MockProvider, rec speech.Recognizer) *Service {
	return NewService(mock, rec, newFakeRepo(), DefaultConfig())
}

func TestScoreListening(t *testing.T) {
	svc := newTestService(llm.NewMockProvider(), speech.NewMockRecognizer())

	p1Key := []string{"a", "b", "c", "d", "e"}
	p1Answers := []string{"a", "b", "c", "x", "x"}
	p2Key := Sheet{
		progression.LevelA1: {"a", "a", "a", "a", "a"},
		progression.LevelB1: {"b", "b", "b", "b", "b"},
	}
	p2Answers := Sheet{
		progression.LevelA1: {"a", "a", "a", "a", "x"},
		progression.LevelB1: {"b", "b", "b", "x", "x"},
	}

	// 3 + 4 + 3 = 10 of 15 -> 66.
	out := svc.ScoreListening(p1Answers, p1Key, p2Answers, p2Key)
	assert.Equal(t, 66, out.Score.Value)
	assert.Equal(t, progression.LevelB2, out.Level)
}

func TestScoreWriting(t *testing.T) {
	grammarKey := Sheet{progression.LevelA1: {"a", "b", "c", "d", "e"}}
	grammarAnswers := Sheet{progression.LevelA1: {"a", "b", "c", "d", "x"}}
	essays := map[progression.Level]EssayAnswer{
		progression.LevelA1: {Topic: "Introduce yourself", Text: "My name is Ayşe and I live in Izmir."},
		progression.LevelB1: {Topic: "Describe your last holiday", Text: "Last summer I travelled to the coast with my family."},
		progression.LevelC1: {Topic: "Argue for or against remote work", Text: "Remote work reshapes how organisations think about trust."},
	}

	t.Run("oracle verdict blended", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{"ai_score": 70}`)})
		svc := newTestService(mock, speech.NewMockRecognizer())

		// 80*0.4 + 70*0.6 = 74.
		out := svc.ScoreWriting(context.Background(), grammarAnswers, grammarKey, essays)
		assert.Equal(t, 74, out.Score.Value)
		assert.Equal(t, progression.LevelB2, out.Level)
		assert.False(t, out.Score.Fallback)

		require.Len(t, mock.Calls, 1)
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "TASK 3 (Level C1)")
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "remote work")
	})

	t.Run("oracle failure substitutes tagged default", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("model overloaded")})
		svc := newTestService(mock, speech.NewMockRecognizer())

		// 80*0.4 + 40*0.6 = 56.
		out := svc.ScoreWriting(context.Background(), grammarAnswers, grammarKey, essays)
		assert.Equal(t, 56, out.Score.Value)
		assert.Equal(t, progression.LevelB1, out.Level)
		assert.True(t, out.Score.Fallback)
	})

	t.Run("missing essay rendered as no answer", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{"ai_score": 15}`)})
		svc := newTestService(mock, speech.NewMockRecognizer())

		svc.ScoreWriting(context.Background(), grammarAnswers, grammarKey, nil)
		require.Len(t, mock.Calls, 1)
		assert.Contains(t, mock.Calls[0].Messages[0].Content, "NO ANSWER")
	})
}

func TestScoreSpeaking(t *testing.T) {
	t.Run("missing recording scores zero", func(t *testing.T) {
		rec := speech.NewMockRecognizer(
			speech.MockAssessment{Assessment: speech.Assessment{
				Transcript: "My name is Ayşe and I am learning English.",
				Scores:     speech.Scores{Accuracy: 90, Fluency: 80, Pronunciation: 85},
			}},
			speech.MockAssessment{Assessment: speech.Assessment{
				Transcript: "Last year I moved to a bigger city for my studies.",
				Scores:     speech.Scores{Accuracy: 60, Fluency: 60, Pronunciation: 60},
			}},
		)
		mock := llm.NewMockProvider(
			llm.MockResponse{Content: []byte(`{"score": 70}`)},
			llm.MockResponse{Content: []byte(`{"score": 50}`)},
		)
		svc := newTestService(mock, rec)

		// A1: 85*0.6 + 70*0.4 = 79. B1: 60*0.6 + 50*0.4 = 56. C1 absent: 0.
		// Mean 45.
		out := svc.ScoreSpeaking(context.Background(), map[progression.Level][]byte{
			progression.LevelA1: []byte("wav-a1"),
			progression.LevelB1: []byte("wav-b1"),
		})
		assert.Equal(t, 45, out.Score.Value)
		assert.Equal(t, progression.LevelB1, out.Level)
		assert.False(t, out.Score.Fallback)
	})

	t.Run("recognizer failure substitutes tagged low default", func(t *testing.T) {
		rec := speech.NewMockRecognizer(
			speech.MockAssessment{Err: errors.New("service unavailable")},
		)
		svc := newTestService(llm.NewMockProvider(), rec)

		// A1: substituted 10. B1, C1 absent: 0. Mean 3.
		out := svc.ScoreSpeaking(context.Background(), map[progression.Level][]byte{
			progression.LevelA1: []byte("wav-a1"),
		})
		assert.Equal(t, 3, out.Score.Value)
		assert.True(t, out.Score.Fallback)
		assert.Equal(t, progression.LevelA1, out.Level)
	})
}

func TestSaveResult(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(llm.NewMockProvider(), speech.NewMockRecognizer(), repo, DefaultConfig())
	ctx := context.Background()

	err := svc.SaveResult(ctx, "learner-1", map[progression.Skill]progression.Level{
		progression.SkillReading:   progression.LevelB1,
		progression.SkillListening: progression.LevelA2,
	})
	require.NoError(t, err)

	seeded := repo.seeded["learner-1"]
	assert.Equal(t, progression.LevelB1, seeded[progression.SkillReading])
	assert.Equal(t, progression.LevelA2, seeded[progression.SkillListening])
	// Unplaced skills default to the lowest band.
	assert.Equal(t, progression.LevelA1, seeded[progression.SkillWriting])
	assert.Equal(t, progression.LevelA1, seeded[progression.SkillSpeaking])

	done, err := svc.Completed(ctx, "learner-1")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.Completed(ctx, "learner-2")
	require.NoError(t, err)
	assert.False(t, done)
}
