package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// ProgressRepo persists progression records as one row per learner with a
// fixed (level, xp, cooldown) column triplet per skill.
//
// UpdateSkill runs its closure inside a database transaction so concurrent
// submissions for the same learner+skill are applied in some order but
// never lost or double-applied. The mutex serializes read-modify-write
// cycles within the process; the transaction makes each cycle atomic at
// the database level.
type ProgressRepo struct {
	mu sync.Mutex
	db *sql.DB
}

var _ progression.Repo = (*ProgressRepo)(nil)

// skillColumns maps the closed skill enum to its column triplet. Keeping
// this the only place skill names meet SQL removes the injection and
// typo-class bugs of building column names from strings.
func skillColumns(skill progression.Skill) (level, xp, cooldown string, err error) {
	switch skill {
	case progression.SkillReading:
		return "reading_level", "reading_xp", "reading_cooldown", nil
	case progression.SkillListening:
		return "listening_level", "listening_xp", "listening_cooldown", nil
	case progression.SkillWriting:
		return "writing_level", "writing_xp", "writing_cooldown", nil
	case progression.SkillSpeaking:
		return "speaking_level", "speaking_xp", "speaking_cooldown", nil
	}
	return "", "", "", fmt.Errorf("%w: %q", progression.ErrUnknownSkill, skill)
}

// GetRecord loads the learner's full progression record.
func (r *ProgressRepo) GetRecord(ctx context.Context, learnerID string) (*progression.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT reading_level, reading_xp, reading_cooldown,
		       listening_level, listening_xp, listening_cooldown,
		       writing_level, writing_xp, writing_cooldown,
		       speaking_level, speaking_xp, speaking_cooldown
		FROM learner_levels WHERE learner_id = ?`, learnerID)

	var raw [4]struct {
		level    string
		xp       int
		cooldown sql.NullString
	}
	err := row.Scan(
		&raw[0].level, &raw[0].xp, &raw[0].cooldown,
		&raw[1].level, &raw[1].xp, &raw[1].cooldown,
		&raw[2].level, &raw[2].xp, &raw[2].cooldown,
		&raw[3].level, &raw[3].xp, &raw[3].cooldown,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, progression.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}

	rec := &progression.Record{
		LearnerID: learnerID,
		Skills:    make(map[progression.Skill]progression.SkillState, 4),
	}
	for i, skill := range progression.AllSkills() {
		state, err := scanState(raw[i].level, raw[i].xp, raw[i].cooldown)
		if err != nil {
			return nil, fmt.Errorf("skill %s: %w", skill, err)
		}
		rec.Skills[skill] = state
	}
	return rec, nil
}

// GetSkill loads the state of one skill.
func (r *ProgressRepo) GetSkill(ctx context.Context, learnerID string, skill progression.Skill) (progression.SkillState, error) {
	levelCol, xpCol, cdCol, err := skillColumns(skill)
	if err != nil {
		return progression.SkillState{}, err
	}

	q := fmt.Sprintf(`SELECT %s, %s, %s FROM learner_levels WHERE learner_id = ?`, levelCol, xpCol, cdCol)
	var level string
	var xp int
	var cooldown sql.NullString
	err = r.db.QueryRowContext(ctx, q, learnerID).Scan(&level, &xp, &cooldown)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.SkillState{}, progression.ErrNoRecord
	}
	if err != nil {
		return progression.SkillState{}, fmt.Errorf("query skill: %w", err)
	}
	return scanState(level, xp, cooldown)
}

// UpdateSkill applies fn to the current state of one skill inside a
// transaction and persists the result.
func (r *ProgressRepo) UpdateSkill(ctx context.Context, learnerID string, skill progression.Skill, fn func(progression.SkillState) (progression.SkillState, error)) (progression.SkillState, error) {
	levelCol, xpCol, cdCol, err := skillColumns(skill)
	if err != nil {
		return progression.SkillState{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return progression.SkillState{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	q := fmt.Sprintf(`SELECT %s, %s, %s FROM learner_levels WHERE learner_id = ?`, levelCol, xpCol, cdCol)
	var level string
	var xp int
	var cooldown sql.NullString
	err = tx.QueryRowContext(ctx, q, learnerID).Scan(&level, &xp, &cooldown)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.SkillState{}, progression.ErrNoRecord
	}
	if err != nil {
		return progression.SkillState{}, fmt.Errorf("read current state: %w", err)
	}

	cur, err := scanState(level, xp, cooldown)
	if err != nil {
		return progression.SkillState{}, err
	}

	next, err := fn(cur)
	if err != nil {
		return progression.SkillState{}, err
	}

	var cd any
	if next.CooldownUntil != nil {
		cd = next.CooldownUntil.UTC().Format(time.RFC3339Nano)
	}
	upd := fmt.Sprintf(`UPDATE learner_levels
		SET %s = ?, %s = ?, %s = ?, updated_at = CURRENT_TIMESTAMP
		WHERE learner_id = ?`, levelCol, xpCol, cdCol)
	if _, err := tx.ExecContext(ctx, upd, string(next.Level), next.XP, cd, learnerID); err != nil {
		return progression.SkillState{}, fmt.Errorf("write state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return progression.SkillState{}, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

// SeedRecord creates (or re-seeds) the learner's progression record from
// placement results. Each skill starts at its placed level's floor
// experience. Upsert keeps the operation idempotent.
func (r *ProgressRepo) SeedRecord(ctx context.Context, learnerID string, levels map[progression.Skill]progression.Level) error {
	get := func(skill progression.Skill) (string, int) {
		level, ok := levels[skill]
		if !ok {
			level = progression.LevelA1
		}
		return string(level), level.Floor()
	}
	rl, rx := get(progression.SkillReading)
	ll, lx := get(progression.SkillListening)
	wl, wx := get(progression.SkillWriting)
	sl, sx := get(progression.SkillSpeaking)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learner_levels
			(learner_id, reading_level, reading_xp, listening_level, listening_xp,
			 writing_level, writing_xp, speaking_level, speaking_xp, placement_done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(learner_id) DO UPDATE SET
			reading_level = excluded.reading_level, reading_xp = excluded.reading_xp,
			listening_level = excluded.listening_level, listening_xp = excluded.listening_xp,
			writing_level = excluded.writing_level, writing_xp = excluded.writing_xp,
			speaking_level = excluded.speaking_level, speaking_xp = excluded.speaking_xp,
			reading_cooldown = NULL, listening_cooldown = NULL,
			writing_cooldown = NULL, speaking_cooldown = NULL,
			placement_done = 1, updated_at = CURRENT_TIMESTAMP`,
		learnerID, rl, rx, ll, lx, wl, wx, sl, sx)
	if err != nil {
		return fmt.Errorf("seed record: %w", err)
	}
	return nil
}

// PlacementDone reports whether the learner has a seeded record.
func (r *ProgressRepo) PlacementDone(ctx context.Context, learnerID string) (bool, error) {
	var done int
	err := r.db.QueryRowContext(ctx,
		`SELECT placement_done FROM learner_levels WHERE learner_id = ?`, learnerID).Scan(&done)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query placement flag: %w", err)
	}
	return done != 0, nil
}

func scanState(level string, xp int, cooldown sql.NullString) (progression.SkillState, error) {
	lvl, err := progression.ParseLevel(level)
	if err != nil {
		return progression.SkillState{}, err
	}
	state := progression.SkillState{Level: lvl, XP: xp}
	if cooldown.Valid && cooldown.String != "" {
		t, err := time.Parse(time.RFC3339Nano, cooldown.String)
		if err != nil {
			return progression.SkillState{}, fmt.Errorf("parse cooldown: %w", err)
		}
		state.CooldownUntil = &t
	}
	return state, nil
}
