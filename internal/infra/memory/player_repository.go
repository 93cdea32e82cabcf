package memory

import (
	"context"
	"sync"

	"quiz-league-service/internal/domain"
)

// PlayerRepository is an in-memory implementation of app.PlayerRepository.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]domain.Player
}

func NewPlayerRepository(seed ...domain.Player) *PlayerRepository {
	players := make(map[string]domain.Player, len(seed))
	for _, p := range seed {
		players[p.ID] = p
	}
	return &PlayerRepository{players: players}
}

func (r *PlayerRepository) Get(_ context.Context, playerID string) (domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.players[playerID]
	if !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return player, nil
}

func (r *PlayerRepository) Save(_ context.Context, player domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.ID] = player
	return nil
}
