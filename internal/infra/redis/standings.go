package redis

import (
	"context"
	"fmt"

	"quiz-league-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const standingsKey = "league:standings"

// StandingsBoard keeps cumulative player scores in a Redis sorted set.
type StandingsBoard struct {
	client *redis.Client
}

func NewStandingsBoard(client *redis.Client) *StandingsBoard {
	return &StandingsBoard{client: client}
}

func (b *StandingsBoard) Record(ctx context.Context, player domain.Player) error {
	err := b.client.ZAdd(ctx, standingsKey, redis.Z{
		Score:  float64(player.Score),
		Member: player.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("record standing: %w", err)
	}
	return nil
}

func (b *StandingsBoard) Top(ctx context.Context, limit int) ([]domain.Standing, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	res, err := b.client.ZRevRangeWithScores(ctx, standingsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read standings: %w", err)
	}

	table := make([]domain.Standing, 0, len(res))
	for _, z := range res {
		score := int(z.Score)
		table = append(table, domain.Standing{
			PlayerID: z.Member.(string),
			Score:    score,
			League:   domain.Classify(score),
		})
	}
	return table, nil
}
