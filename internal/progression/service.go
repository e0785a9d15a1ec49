package progression

import (
	"context"
	"fmt"
	"time"
)

// CooldownHours is the exam re-entry lockout applied after a failed exam.
const CooldownHours = 3

// failurePenaltyRate is the fraction of experience lost on exam failure.
const failurePenaltyRate = 0.15

// Service owns the per-skill (level, experience, cooldown) state machine.
// All mutations go through Repo.UpdateSkill so concurrent submissions for
// the same learner+skill serialize at the row.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService creates a progression service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GainResult reports the outcome of a practice experience gain.
type GainResult struct {
	GainedXP   int
	TotalXP    int
	Level      Level
	ExamNeeded bool
}

// PromoteResult reports a successful level promotion.
type PromoteResult struct {
	NewLevel Level
	NewXP    int
}

// FailureResult reports the consequence of a failed advancement exam.
type FailureResult struct {
	Penalty       int
	NewXP         int
	CooldownHours int
}

// Cooldown reports the exam-entry lockout status for a skill.
type Cooldown struct {
	Active    bool
	Until     time.Time
	Remaining time.Duration
}

// ApplyPracticeGain converts a 0-100 activity score into an experience
// delta and banks it. For non-C2 levels the persisted experience is capped
// at the level ceiling, but the returned GainedXP is the uncapped delta:
// the learner earned it, they just can't bank it until the exam.
func (s *Service) ApplyPracticeGain(ctx context.Context, learnerID string, skill Skill, score int, activityLevel Level) (*GainResult, error) {
	delta := xpDelta(score, activityLevel)

	state, err := s.repo.UpdateSkill(ctx, learnerID, skill, func(cur SkillState) (SkillState, error) {
		if cur.Level.IsMax() {
			cur.XP += delta
			return cur, nil
		}
		candidate := cur.XP + delta
		if candidate > cur.Level.Ceiling() {
			cur.XP = cur.Level.Ceiling()
		} else {
			cur.XP = candidate
		}
		return cur, nil
	})
	if err != nil {
		return nil, fmt.Errorf("apply practice gain: %w", err)
	}

	return &GainResult{
		GainedXP:   delta,
		TotalXP:    state.XP,
		Level:      state.Level,
		ExamNeeded: !state.Level.IsMax() && state.XP >= state.Level.Ceiling(),
	}, nil
}

// Promote advances a skill to the next level after an exam pass. The level
// change and the experience nudge (+1, landing strictly inside the new
// level's range) persist atomically. Promoting a C2 skill fails with
// ErrMaxLevel and mutates nothing.
func (s *Service) Promote(ctx context.Context, learnerID string, skill Skill) (*PromoteResult, error) {
	state, err := s.repo.UpdateSkill(ctx, learnerID, skill, func(cur SkillState) (SkillState, error) {
		next, ok := cur.Level.Next()
		if !ok {
			return cur, ErrMaxLevel
		}
		cur.Level = next
		cur.XP++
		return cur, nil
	})
	if err != nil {
		return nil, fmt.Errorf("promote: %w", err)
	}

	return &PromoteResult{NewLevel: state.Level, NewXP: state.XP}, nil
}

// ApplyExamFailure deducts 15% of current experience (never dropping below
// zero) and locks exam entry for three hours. Level is unchanged.
func (s *Service) ApplyExamFailure(ctx context.Context, learnerID string, skill Skill) (*FailureResult, error) {
	var penalty int
	until := s.now().Add(CooldownHours * time.Hour)

	state, err := s.repo.UpdateSkill(ctx, learnerID, skill, func(cur SkillState) (SkillState, error) {
		penalty = int(float64(cur.XP) * failurePenaltyRate)
		cur.XP = max(0, cur.XP-penalty)
		cur.CooldownUntil = &until
		return cur, nil
	})
	if err != nil {
		return nil, fmt.Errorf("apply exam failure: %w", err)
	}

	return &FailureResult{
		Penalty:       penalty,
		NewXP:         state.XP,
		CooldownHours: CooldownHours,
	}, nil
}

// CheckCooldown reports whether exam entry is blocked for a skill. An
// expired cooldown is cleared on read, so a second call also reports no
// cooldown.
func (s *Service) CheckCooldown(ctx context.Context, learnerID string, skill Skill) (*Cooldown, error) {
	state, err := s.repo.GetSkill(ctx, learnerID, skill)
	if err != nil {
		return nil, fmt.Errorf("check cooldown: %w", err)
	}
	if state.CooldownUntil == nil {
		return &Cooldown{}, nil
	}

	now := s.now()
	if state.CooldownUntil.After(now) {
		return &Cooldown{
			Active:    true,
			Until:     *state.CooldownUntil,
			Remaining: state.CooldownUntil.Sub(now),
		}, nil
	}

	// Expired: clean up the stored cooldown.
	_, err = s.repo.UpdateSkill(ctx, learnerID, skill, func(cur SkillState) (SkillState, error) {
		cur.CooldownUntil = nil
		return cur, nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear cooldown: %w", err)
	}
	return &Cooldown{}, nil
}

// GetSkill returns the current state for one skill.
func (s *Service) GetSkill(ctx context.Context, learnerID string, skill Skill) (SkillState, error) {
	return s.repo.GetSkill(ctx, learnerID, skill)
}

// GetRecord returns the learner's full progression record.
func (s *Service) GetRecord(ctx context.Context, learnerID string) (*Record, error) {
	return s.repo.GetRecord(ctx, learnerID)
}

// xpDelta truncates score*multiplier to an integer. Non-positive scores
// never decrease experience.
func xpDelta(score int, activityLevel Level) int {
	if score <= 0 {
		return 0
	}
	return int(float64(score) * activityLevel.Multiplier())
}
