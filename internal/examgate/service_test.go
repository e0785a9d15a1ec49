package examgate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/llm"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/speech"
)

// fakeRepo is an in-memory progression.Repo for exam gate tests.
type fakeRepo struct {
	states map[string]progression.SkillState
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{states: make(map[string]progression.SkillState)}
}

func (f *fakeRepo) key(learnerID string, skill progression.Skill) string {
	return learnerID + "/" + string(skill)
}

func (f *fakeRepo) GetRecord(_ context.Context, learnerID string) (*progression.Record, error) {
	rec := &progression.Record{LearnerID: learnerID, Skills: make(map[progression.Skill]progression.SkillState)}
	for _, skill := range progression.AllSkills() {
		st, ok := f.states[f.key(learnerID, skill)]
		if !ok {
			return nil, progression.ErrNoRecord
		}
		rec.Skills[skill] = st
	}
	return rec, nil
}

func (f *fakeRepo) GetSkill(_ context.Context, learnerID string, skill progression.Skill) (progression.SkillState, error) {
	st, ok := f.states[f.key(learnerID, skill)]
	if !ok {
		return progression.SkillState{}, progression.ErrNoRecord
	}
	return st, nil
}

func (f *fakeRepo) UpdateSkill(_ context.Context, learnerID string, skill progression.Skill, fn func(progression.SkillState) (progression.SkillState, error)) (progression.SkillState, error) {
	st, ok := f.states[f.key(learnerID, skill)]
	if !ok {
		return progression.SkillState{}, progression.ErrNoRecord
	}
	next, err := fn(st)
	if err != nil {
		return progression.SkillState{}, err
	}
	f.states[f.key(learnerID, skill)] = next
	return next, nil
}

func (f *fakeRepo) SeedRecord(_ context.Context, learnerID string, levels map[progression.Skill]progression.Level) error {
	for skill, level := range levels {
		f.states[f.key(learnerID, skill)] = progression.SkillState{Level: level, XP: level.Floor()}
	}
	return nil
}

func seedLearner(repo *fakeRepo, skill progression.Skill, state progression.SkillState) {
	repo.states[repo.key("learner-1", skill)] = state
}

func newTestService(mock *llm.MockProvider, rec speech.Recognizer, repo *fakeRepo) *Service {
	return NewService(mock, rec, progression.NewService(repo), DefaultConfig())
}

// objectiveAnswers builds correct matched pairs and wrong mismatched ones.
func objectiveAnswers(correct, wrong int) []ObjectiveAnswer {
	var out []ObjectiveAnswer
	for i := 0; i < correct; i++ {
		out = append(out, ObjectiveAnswer{Given: " True ", Want: "true"})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, ObjectiveAnswer{Given: "harvest", Want: "frost"})
	}
	return out
}

func summaryJSON(score int) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{"score": score})
	return raw
}

const partText = "Every autumn the farmers gather to bring in the harvest before the first frost arrives."

const longSummary = "The farmers collect all their crops in autumn before the cold weather comes."

func TestCheckEligibilityMaxLevel(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{Level: progression.LevelC2, XP: 20000})
	svc := newTestService(llm.NewMockProvider(), speech.NewMockRecognizer(), repo)

	elig, err := svc.CheckEligibility(context.Background(), "learner-1", progression.SkillReading)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if elig.CanEnter {
		t.Error("C2 skill should not be eligible")
	}
	if elig.Reason != ReasonMaxLevel {
		t.Errorf("reason = %q, want %q", elig.Reason, ReasonMaxLevel)
	}
}

func TestCheckEligibilityInsufficientXP(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillWriting, progression.SkillState{Level: progression.LevelB1, XP: 2000})
	svc := newTestService(llm.NewMockProvider(), speech.NewMockRecognizer(), repo)

	elig, err := svc.CheckEligibility(context.Background(), "learner-1", progression.SkillWriting)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if elig.CanEnter || elig.Reason != ReasonInsufficient {
		t.Fatalf("got CanEnter=%v reason=%q", elig.CanEnter, elig.Reason)
	}
	if elig.CurrentXP != 2000 || elig.RequiredXP != 3499 {
		t.Errorf("xp = %d/%d, want 2000/3499", elig.CurrentXP, elig.RequiredXP)
	}
}

func TestCheckEligibilityCooldown(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(90 * time.Minute)

	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{
		Level: progression.LevelB1, XP: 3499, CooldownUntil: &until,
	})
	progress := progression.NewService(repo).WithClock(func() time.Time { return now })
	svc := NewService(llm.NewMockProvider(), speech.NewMockRecognizer(), progress, DefaultConfig())

	elig, err := svc.CheckEligibility(context.Background(), "learner-1", progression.SkillReading)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if elig.CanEnter || elig.Reason != ReasonCooldown {
		t.Fatalf("got CanEnter=%v reason=%q", elig.CanEnter, elig.Reason)
	}
	if elig.CooldownRemainingMinutes != 90 {
		t.Errorf("remaining = %d minutes, want 90", elig.CooldownRemainingMinutes)
	}
}

func TestCheckEligibilityExpiredCooldown(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute)

	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{
		Level: progression.LevelB1, XP: 3600, CooldownUntil: &until,
	})
	progress := progression.NewService(repo).WithClock(func() time.Time { return now })
	svc := NewService(llm.NewMockProvider(), speech.NewMockRecognizer(), progress, DefaultConfig())

	elig, err := svc.CheckEligibility(context.Background(), "learner-1", progression.SkillReading)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if !elig.CanEnter {
		t.Fatalf("expired cooldown should not block, got reason %q", elig.Reason)
	}
	if elig.TargetLevel != progression.LevelB1 {
		t.Errorf("target level = %q, want B1", elig.TargetLevel)
	}
}

func TestGenerateExamReading(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"parts": []map[string]any{
			{"id": 1, "text": partText, "mc_questions": []any{}, "fib_questions": []any{}, "tf_questions": []any{}},
			{"id": 2, "text": partText, "mc_questions": []any{}, "fib_questions": []any{}, "tf_questions": []any{}},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	svc := newTestService(mock, speech.NewMockRecognizer(), newFakeRepo())

	exam, err := svc.GenerateExam(context.Background(), progression.SkillReading, progression.LevelB1)
	if err != nil {
		t.Fatalf("GenerateExam: %v", err)
	}
	if len(exam.Parts) != 2 {
		t.Fatalf("parts = %d, want 2", len(exam.Parts))
	}
	if exam.Skill != progression.SkillReading || exam.Level != progression.LevelB1 {
		t.Errorf("exam tagged %s/%s", exam.Skill, exam.Level)
	}

	req := mock.Calls[0]
	if req.Schema != ComprehensionExamSchema {
		t.Error("wrong schema sent to provider")
	}
	if !strings.Contains(req.System, "300 words") {
		t.Errorf("B1 exam prompt should ask for 300 word texts:\n%s", req.System)
	}
}

func TestGenerateExamBeginnerTextLength(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{"parts": []any{}})
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	svc := newTestService(mock, speech.NewMockRecognizer(), newFakeRepo())

	if _, err := svc.GenerateExam(context.Background(), progression.SkillListening, progression.LevelA2); err != nil {
		t.Fatalf("GenerateExam: %v", err)
	}
	if !strings.Contains(mock.Calls[0].System, "150 words") {
		t.Error("A2 exam prompt should ask for 150 word texts")
	}
}

func TestGenerateExamWriting(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"tasks": []map[string]any{
			{"id": 1, "topic": "My neighbourhood", "instructions": "Describe it", "constraints": "120-150 words"},
			{"id": 2, "topic": "A letter", "instructions": "Write to a friend", "constraints": "100-120 words"},
		},
	})
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	svc := newTestService(mock, speech.NewMockRecognizer(), newFakeRepo())

	exam, err := svc.GenerateExam(context.Background(), progression.SkillWriting, progression.LevelA2)
	if err != nil {
		t.Fatalf("GenerateExam: %v", err)
	}
	if len(exam.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(exam.Tasks))
	}
	if mock.Calls[0].Schema != WritingExamSchema {
		t.Error("wrong schema sent to provider")
	}
}

func TestGenerateExamUnknownSkill(t *testing.T) {
	svc := newTestService(llm.NewMockProvider(), speech.NewMockRecognizer(), newFakeRepo())
	_, err := svc.GenerateExam(context.Background(), progression.Skill("grammar"), progression.LevelB1)
	if !errors.Is(err, progression.ErrUnknownSkill) {
		t.Fatalf("err = %v, want ErrUnknownSkill", err)
	}
}

func TestSubmitExamReadingPass(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{Level: progression.LevelB1, XP: 3499})

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: summaryJSON(80)},
		llm.MockResponse{Content: summaryJSON(70)},
	)
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	// Part 1: 14*2 + 80*0.2 = 44. Part 2: 13*2 + 70*0.2 = 40. Total 84.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillReading, Submission{
		Parts: []PartAnswers{
			{Text: partText, Summary: longSummary, Objective: objectiveAnswers(14, 1)},
			{Text: partText, Summary: longSummary, Objective: objectiveAnswers(13, 2)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if !result.Passed {
		t.Fatalf("score %d should pass", result.Score.Value)
	}
	if result.Score.Value != 84 {
		t.Errorf("score = %d, want 84", result.Score.Value)
	}
	if result.Score.Fallback {
		t.Error("score should not be tagged as fallback")
	}
	if result.NewLevel != progression.LevelB2 {
		t.Errorf("new level = %q, want B2", result.NewLevel)
	}
	if result.Penalty != 0 || result.CooldownHours != 0 {
		t.Error("pass result must not carry failure details")
	}

	st, _ := repo.GetSkill(context.Background(), "learner-1", progression.SkillReading)
	if st.Level != progression.LevelB2 || st.XP != 3500 {
		t.Errorf("state = %s/%d, want B2/3500", st.Level, st.XP)
	}
}

func TestSubmitExamReadingFail(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{Level: progression.LevelB1, XP: 3499})

	mock := llm.NewMockProvider()
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	// All objective answers wrong and summaries too short to grade.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillReading, Submission{
		Parts: []PartAnswers{
			{Text: partText, Summary: "Too short.", Objective: objectiveAnswers(0, 15)},
			{Text: partText, Summary: "Also short.", Objective: objectiveAnswers(0, 15)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Passed {
		t.Fatal("zero score should fail")
	}
	if result.Score.Value != 0 {
		t.Errorf("score = %d, want 0", result.Score.Value)
	}
	if result.Penalty != 524 || result.NewXP != 2975 || result.CooldownHours != 3 {
		t.Errorf("failure = penalty %d xp %d cooldown %dh, want 524/2975/3", result.Penalty, result.NewXP, result.CooldownHours)
	}
	if mock.CallCount() != 0 {
		t.Error("short summaries must not reach the oracle")
	}

	st, _ := repo.GetSkill(context.Background(), "learner-1", progression.SkillReading)
	if st.Level != progression.LevelB1 || st.XP != 2975 || st.CooldownUntil == nil {
		t.Errorf("state after failure = %s/%d cooldown=%v", st.Level, st.XP, st.CooldownUntil)
	}

	elig, err := svc.CheckEligibility(context.Background(), "learner-1", progression.SkillReading)
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if elig.CanEnter {
		t.Error("learner should be locked out after failing")
	}
}

func TestSubmitExamSummaryOracleFallback(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillListening, progression.SkillState{Level: progression.LevelB1, XP: 3499})

	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("model overloaded")})
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	// 10*2 + 50*0.2 = 30 with the substituted summary default.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillListening, Submission{
		Parts: []PartAnswers{
			{Text: partText, Summary: longSummary, Objective: objectiveAnswers(10, 5)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Score.Value != 30 {
		t.Errorf("score = %d, want 30", result.Score.Value)
	}
	if !result.Score.Fallback {
		t.Error("substituted summary default must tag the score as fallback")
	}
}

func TestSubmitExamWritingShortTaskSkipsOracle(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillWriting, progression.SkillState{Level: progression.LevelB2, XP: 7499})

	essay := strings.Repeat("opportunity ", 40)
	mock := llm.NewMockProvider(llm.MockResponse{Content: summaryJSON(80)})
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	// Task 1 scores 80, task 2 is under ten words and scores 0: mean 40.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillWriting, Submission{
		WritingTasks: []WritingTaskAnswer{
			{Topic: "City life", Answer: essay},
			{Topic: "A letter", Answer: "I cannot write much today."},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Score.Value != 40 {
		t.Errorf("score = %d, want 40", result.Score.Value)
	}
	if result.Score.Fallback {
		t.Error("a real short-task zero is not a fallback")
	}
	if mock.CallCount() != 1 {
		t.Errorf("oracle calls = %d, want 1", mock.CallCount())
	}
	if result.Passed {
		t.Error("score 40 should fail")
	}
}

func TestSubmitExamWritingOracleFallback(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillWriting, progression.SkillState{Level: progression.LevelB2, XP: 7499})

	essay := strings.Repeat("opportunity ", 40)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: summaryJSON(90)},
		llm.MockResponse{Err: errors.New("model overloaded")},
	)
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	// (90 + substituted 40) / 2 = 65.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillWriting, Submission{
		WritingTasks: []WritingTaskAnswer{
			{Topic: "City life", Answer: essay},
			{Topic: "A letter", Answer: essay},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Score.Value != 65 {
		t.Errorf("score = %d, want 65", result.Score.Value)
	}
	if !result.Score.Fallback {
		t.Error("substituted task default must tag the score as fallback")
	}
}

func speakingContentJSON(grammar, vocab, coherence, task float64) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"grammar": grammar, "vocabulary": vocab, "coherence": coherence, "task_achievement": task,
	})
	return raw
}

func TestSubmitExamSpeakingPartialFailure(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillSpeaking, progression.SkillState{Level: progression.LevelB1, XP: 3499})

	rec := speech.NewMockRecognizer(
		speech.MockAssessment{Assessment: speech.Assessment{
			Transcript: "I think city life offers more opportunities for young people.",
			Scores:     speech.Scores{Accuracy: 90, Fluency: 80, Pronunciation: 85},
		}},
		speech.MockAssessment{Err: errors.New("service unavailable")},
	)
	mock := llm.NewMockProvider(llm.MockResponse{Content: speakingContentJSON(80, 70, 75, 75)})
	svc := newTestService(mock, rec, repo)

	// Task 1: (85 + 75) / 2 = 80. Task 2: substituted 0. Mean 40.
	result, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillSpeaking, Submission{
		SpeakingTasks: []SpeakingTaskAnswer{
			{Prompt: "Describe your home town", Audio: []byte("wav-1")},
			{Prompt: "Talk about a journey", Audio: []byte("wav-2")},
		},
	})
	if err != nil {
		t.Fatalf("SubmitExam: %v", err)
	}
	if result.Score.Value != 40 {
		t.Errorf("score = %d, want 40", result.Score.Value)
	}
	if !result.Score.Fallback {
		t.Error("a substituted task zero must tag the score as fallback")
	}
	if result.Passed {
		t.Error("score 40 should fail")
	}
}

func TestSubmitExamSpeakingAllTasksFailed(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillSpeaking, progression.SkillState{Level: progression.LevelB1, XP: 3499})

	rec := speech.NewMockRecognizer(
		speech.MockAssessment{Err: errors.New("service unavailable")},
		speech.MockAssessment{Err: errors.New("service unavailable")},
	)
	svc := newTestService(llm.NewMockProvider(), rec, repo)

	_, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillSpeaking, Submission{
		SpeakingTasks: []SpeakingTaskAnswer{
			{Prompt: "Describe your home town", Audio: []byte("wav-1")},
			{Prompt: "Talk about a journey", Audio: []byte("wav-2")},
		},
	})
	if !errors.Is(err, ErrScoringFailed) {
		t.Fatalf("err = %v, want ErrScoringFailed", err)
	}

	st, _ := repo.GetSkill(context.Background(), "learner-1", progression.SkillSpeaking)
	if st.XP != 3499 || st.CooldownUntil != nil {
		t.Errorf("scoring failure must not mutate state, got xp %d cooldown %v", st.XP, st.CooldownUntil)
	}
}

func TestSubmitExamNotEligible(t *testing.T) {
	repo := newFakeRepo()
	seedLearner(repo, progression.SkillReading, progression.SkillState{Level: progression.LevelB1, XP: 2000})

	mock := llm.NewMockProvider()
	svc := newTestService(mock, speech.NewMockRecognizer(), repo)

	_, err := svc.SubmitExam(context.Background(), "learner-1", progression.SkillReading, Submission{
		Parts: []PartAnswers{{Text: partText, Summary: longSummary, Objective: objectiveAnswers(15, 0)}},
	})
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("err = %v, want ErrNotEligible", err)
	}
	if mock.CallCount() != 0 {
		t.Error("an ineligible submission must not be graded")
	}
}

func TestAnswersMatch(t *testing.T) {
	cases := []struct {
		given, want string
		match       bool
	}{
		{"True", "true", true},
		{"  frost ", "frost", true},
		{"B", "b", true},
		{"False", "true", false},
		{"", "frost", false},
	}
	for _, tc := range cases {
		if got := answersMatch(tc.given, tc.want); got != tc.match {
			t.Errorf("answersMatch(%q, %q) = %v, want %v", tc.given, tc.want, got, tc.match)
		}
	}
}
