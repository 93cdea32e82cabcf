package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-league-service/internal/domain"
)

// StandingsBoard is an in-memory implementation of app.StandingsBoard.
type StandingsBoard struct {
	mu     sync.RWMutex
	scores map[string]domain.Standing
}

func NewStandingsBoard() *StandingsBoard {
	return &StandingsBoard{scores: make(map[string]domain.Standing)}
}

func (b *StandingsBoard) Record(_ context.Context, player domain.Player) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scores[player.ID] = domain.Standing{
		PlayerID: player.ID,
		Score:    player.Score,
		League:   player.League,
	}
	return nil
}

func (b *StandingsBoard) Top(_ context.Context, limit int) ([]domain.Standing, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	table := make([]domain.Standing, 0, len(b.scores))
	for _, s := range b.scores {
		table = append(table, s)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Score != table[j].Score {
			return table[i].Score > table[j].Score
		}
		return table[i].PlayerID < table[j].PlayerID
	})
	if limit > 0 && len(table) > limit {
		table = table[:limit]
	}
	return table, nil
}
