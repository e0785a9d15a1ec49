package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/vocabselect"
)

// VocabRepo queries and loads the vocabulary bank the content selection
// cascade draws from.
type VocabRepo struct {
	db *sql.DB
}

var _ vocabselect.WordSource = (*VocabRepo)(nil)

// FetchWords returns up to limit words for a level and topic whose word
// type matches the given LIKE pattern, in random order.
func (r *VocabRepo) FetchWords(ctx context.Context, level progression.Level, topicSlug, posPattern string, limit int) ([]vocabselect.Word, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.word, v.word_type, v.meaning
		FROM vocab v
		JOIN vocab_topics vt ON v.id = vt.vocab_id
		JOIN topics t ON vt.topic_id = t.id
		WHERE v.level = ? AND t.slug = ? AND v.word_type LIKE ?
		ORDER BY RANDOM()
		LIMIT ?`, string(level), topicSlug, posPattern, limit)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []vocabselect.Word
	for rows.Next() {
		var w vocabselect.Word
		if err := rows.Scan(&w.Word, &w.POS, &w.Meaning); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// AddWord inserts a vocabulary entry and links it to the given topics,
// creating missing topics on the fly. Existing words are updated in place.
func (r *VocabRepo) AddWord(ctx context.Context, word, meaning string, level progression.Level, wordType string, topicSlugs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// RETURNING resolves the row id on both the insert and the update
	// path. last_insert_rowid() is unreliable here: a conflicting upsert
	// leaves it pointing at whatever row the connection inserted last.
	var vocabID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO vocab (word, meaning, level, word_type)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			meaning = excluded.meaning, level = excluded.level, word_type = excluded.word_type
		RETURNING id`,
		word, meaning, string(level), wordType).Scan(&vocabID)
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}

	for _, slug := range topicSlugs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO topics (slug) VALUES (?)`, slug); err != nil {
			return fmt.Errorf("insert topic %q: %w", slug, err)
		}
		var topicID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM topics WHERE slug = ?`, slug).Scan(&topicID); err != nil {
			return fmt.Errorf("resolve topic %q: %w", slug, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO vocab_topics (vocab_id, topic_id) VALUES (?, ?)`, vocabID, topicID); err != nil {
			return fmt.Errorf("link topic %q: %w", slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CountWords returns the number of vocabulary entries, optionally filtered
// by level.
func (r *VocabRepo) CountWords(ctx context.Context, level string) (int, error) {
	var n int
	var err error
	if level == "" {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocab`).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocab WHERE level = ?`, level).Scan(&n)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}
