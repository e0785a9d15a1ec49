package progression

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnknownSkill marks a skill name outside the closed enum.
	ErrUnknownSkill = errors.New("unknown skill")

	// ErrUnknownLevel marks a level outside the fixed A1..C2 order.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrMaxLevel is returned when promoting a skill already at C2.
	ErrMaxLevel = errors.New("already at max level")

	// ErrNoRecord is returned when a learner has no progression record yet
	// (placement not completed).
	ErrNoRecord = errors.New("no progression record")
)

// SkillState is the per-skill slice of a learner's progression record.
type SkillState struct {
	Level         Level
	XP            int
	CooldownUntil *time.Time
}

// Record is the full progression record: one SkillState per skill.
type Record struct {
	LearnerID string
	Skills    map[Skill]SkillState
}

// Repo is the persistence gateway the state machine mutates through.
//
// Update must run fn inside a transaction serialized per learner+skill so
// concurrent submissions for the same pair are never lost or double-applied.
// fn receives the current state and returns the state to persist; it must
// not block (all oracle work happens before Update is entered).
type Repo interface {
	GetRecord(ctx context.Context, learnerID string) (*Record, error)
	GetSkill(ctx context.Context, learnerID string, skill Skill) (SkillState, error)
	UpdateSkill(ctx context.Context, learnerID string, skill Skill, fn func(SkillState) (SkillState, error)) (SkillState, error)
	SeedRecord(ctx context.Context, learnerID string, levels map[Skill]Level) error
}
