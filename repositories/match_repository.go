package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/swiss-system/models"
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	List(ctx context.Context, exec SQLExecutor, round *int) ([]*models.Match, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	// MaxRound returns the highest recorded round and false when no match exists yet.
	MaxRound(ctx context.Context, exec SQLExecutor) (int, bool, error)
	CountInRound(ctx context.Context, exec SQLExecutor, round int) (int, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type sqlMatchRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewMatchRepository(db *sql.DB, dialect Dialect) MatchRepository {
	return &sqlMatchRepository{db: db, dialect: dialect}
}

func (r *sqlMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now().UTC()
	}
	if match.Round <= 0 {
		match.Round = models.FirstRound
	}
	query := r.dialect.Rebind(`
		INSERT INTO matches (winner_id, loser_id, round_num, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.WinnerID,
		match.LoserID,
		match.Round,
		match.CreatedAt,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("failed to insert match %d vs %d: %w", match.WinnerID, match.LoserID, ClassifyError(err))
	}
	return nil
}

func (r *sqlMatchRepository) List(ctx context.Context, exec SQLExecutor, roundFilter *int) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, winner_id, loser_id, round_num, created_at FROM matches`)

	args := []interface{}{}
	if roundFilter != nil {
		queryBuilder.WriteString(" WHERE round_num = ?")
		args = append(args, *roundFilter)
	}
	queryBuilder.WriteString(" ORDER BY round_num ASC, id ASC")

	rows, err := r.getExecutor(exec).QueryContext(ctx, r.dialect.Rebind(queryBuilder.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", ClassifyError(err))
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &m.Round, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", ClassifyError(scanErr))
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", ClassifyError(err))
	}
	return matches, nil
}

func (r *sqlMatchRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(id) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", ClassifyError(err))
	}
	return n, nil
}

func (r *sqlMatchRepository) MaxRound(ctx context.Context, exec SQLExecutor) (int, bool, error) {
	// MAX over an empty table yields one NULL row, not zero rows.
	var maxRound sql.NullInt64
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT MAX(round_num) FROM matches`).Scan(&maxRound); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get max round: %w", ClassifyError(err))
	}
	if !maxRound.Valid {
		return 0, false, nil
	}
	return int(maxRound.Int64), true, nil
}

func (r *sqlMatchRepository) CountInRound(ctx context.Context, exec SQLExecutor, round int) (int, error) {
	var n int
	query := r.dialect.Rebind(`SELECT COUNT(id) FROM matches WHERE round_num = ?`)
	if err := r.getExecutor(exec).QueryRowContext(ctx, query, round).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count matches in round %d: %w", round, ClassifyError(err))
	}
	return n, nil
}

func (r *sqlMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", ClassifyError(err))
	}
	return nil
}
