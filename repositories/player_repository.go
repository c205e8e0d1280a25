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

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error)
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	// CountExisting returns how many of the given ids belong to registered players.
	CountExisting(ctx context.Context, exec SQLExecutor, ids ...int) (int, error)
	// DeleteAll removes every player; their matches go with them (ON DELETE CASCADE).
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type sqlPlayerRepository struct {
	db      *sql.DB // Main DB connection, used if exec is nil
	dialect Dialect
}

func NewPlayerRepository(db *sql.DB, dialect Dialect) PlayerRepository {
	return &sqlPlayerRepository{db: db, dialect: dialect}
}

func (r *sqlPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *sqlPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now().UTC()
	}
	query := r.dialect.Rebind(`INSERT INTO players (name, created_at) VALUES (?, ?) RETURNING id`)
	err := r.getExecutor(exec).QueryRowContext(ctx, query, player.Name, player.CreatedAt).Scan(&player.ID)
	if err != nil {
		return fmt.Errorf("failed to insert player %q: %w", player.Name, ClassifyError(err))
	}
	return nil
}

func (r *sqlPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	if err := rowScanner.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, ClassifyError(err)
	}
	return &p, nil
}

func (r *sqlPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := r.dialect.Rebind(`SELECT id, name, created_at FROM players WHERE id = ?`)
	p, err := r.scanPlayer(r.getExecutor(exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *sqlPlayerRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Player, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, `SELECT id, name, created_at FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", ClassifyError(err))
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		p, errScan := r.scanPlayer(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", errScan)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", ClassifyError(err))
	}
	return players, nil
}

func (r *sqlPlayerRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, `SELECT COUNT(id) FROM players`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", ClassifyError(err))
	}
	return n, nil
}

func (r *sqlPlayerRepository) CountExisting(ctx context.Context, exec SQLExecutor, ids ...int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := r.dialect.Rebind(`SELECT COUNT(id) FROM players WHERE id IN (` + placeholders + `)`)
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var n int
	if err := r.getExecutor(exec).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to check players %v: %w", ids, ClassifyError(err))
	}
	return n, nil
}

func (r *sqlPlayerRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("failed to delete players: %w", ClassifyError(err))
	}
	return nil
}
