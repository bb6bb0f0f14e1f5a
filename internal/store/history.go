package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rsehgal/adaptest/internal/assessment"
)

// ErrNotFound is returned when a session has no stored result.
var ErrNotFound = errors.New("session result not found")

// HistoryEntry is one completed session as shown in the history screen.
type HistoryEntry struct {
	SessionID      string
	Username       string
	ItemBank       string
	FinalTheta     float64
	FinalSem       float64
	Accuracy       float64
	QuestionsAsked int
	Tier           string
	CompletedAt    time.Time
}

// HistoryRepo persists completed session results.
type HistoryRepo interface {
	// Save stores a final results payload. Saving the same session twice
	// overwrites the previous row.
	Save(ctx context.Context, username, itemBank string, results *assessment.Results, completedAt time.Time) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Results loads the full stored payload for one session.
	Results(ctx context.Context, sessionID string) (*assessment.Results, error)
}

// HistoryRepo returns a HistoryRepo backed by this store.
func (s *Store) HistoryRepo() HistoryRepo {
	return &historyRepo{db: s.db}
}

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) Save(ctx context.Context, username, itemBank string, results *assessment.Results, completedAt time.Time) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_results
			(id, session_id, username, item_bank, final_theta, final_sem,
			 accuracy, questions_asked, tier, completed_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			final_theta = excluded.final_theta,
			final_sem = excluded.final_sem,
			accuracy = excluded.accuracy,
			questions_asked = excluded.questions_asked,
			tier = excluded.tier,
			completed_at = excluded.completed_at,
			payload = excluded.payload`,
		uuid.NewString(), results.SessionID, username, itemBank,
		results.FinalTheta, results.FinalSem, results.Accuracy,
		results.QuestionsAsked, results.Tier, completedAt, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save session result: %w", err)
	}
	return nil
}

func (r *historyRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, username, item_bank, final_theta, final_sem,
		       accuracy, questions_asked, tier, completed_at
		FROM session_results
		ORDER BY completed_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(
			&e.SessionID, &e.Username, &e.ItemBank, &e.FinalTheta, &e.FinalSem,
			&e.Accuracy, &e.QuestionsAsked, &e.Tier, &e.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *historyRepo) Results(ctx context.Context, sessionID string) (*assessment.Results, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM session_results WHERE session_id = ?`, sessionID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session result: %w", err)
	}

	var results assessment.Results
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, fmt.Errorf("unmarshal stored results: %w", err)
	}
	return &results, nil
}
