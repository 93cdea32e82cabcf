package postgres

import (
	"context"
	"errors"
	"fmt"

	"quiz-league-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PlayerRepository persists players in Postgres.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

func (r *PlayerRepository) Get(ctx context.Context, playerID string) (domain.Player, error) {
	var player domain.Player
	var league string
	err := r.pool.QueryRow(ctx,
		`SELECT id, display_name, score, league FROM players WHERE id=$1`, playerID).
		Scan(&player.ID, &player.DisplayName, &player.Score, &league)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("load player: %w", err)
	}
	player.League = domain.League(league)
	return player, nil
}

// Save writes score and league in one statement so the pair can never diverge.
func (r *PlayerRepository) Save(ctx context.Context, player domain.Player) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE players SET display_name=$2, score=$3, league=$4, updated_at=now() WHERE id=$1`,
		player.ID, player.DisplayName, player.Score, string(player.League))
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}
