package app

import (
	"context"
	"fmt"
	"log"

	"quiz-league-service/internal/domain"
)

// StandingsBoard keeps the cumulative score table used for league standings.
type StandingsBoard interface {
	Record(ctx context.Context, player domain.Player) error
	Top(ctx context.Context, limit int) ([]domain.Standing, error)
}

// RankUpdater is the sole writer of the score/league pair. Score never changes
// without the league being reclassified in the same save.
type RankUpdater struct {
	players   PlayerRepository
	standings StandingsBoard // optional
	feed      *StandingsFeed // optional
	tableSize int
}

func NewRankUpdater(players PlayerRepository) *RankUpdater {
	return &RankUpdater{players: players, tableSize: 10}
}

// WithStandings wires a standings board and live feed into rank updates.
func (u *RankUpdater) WithStandings(board StandingsBoard, feed *StandingsFeed, tableSize int) *RankUpdater {
	u.standings = board
	u.feed = feed
	if tableSize > 0 {
		u.tableSize = tableSize
	}
	return u
}

// Apply credits the reward to the player's cumulative score, reclassifies the
// league, and persists both together.
func (u *RankUpdater) Apply(ctx context.Context, playerID string, reward int) (domain.Player, error) {
	player, err := u.players.Get(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	player.Score += reward
	player.League = domain.Classify(player.Score)
	if err := u.players.Save(ctx, player); err != nil {
		return domain.Player{}, fmt.Errorf("save player: %w", err)
	}

	u.publish(ctx, player)
	return player, nil
}

// publish pushes the new score to the standings board and fans the refreshed
// table out to feed subscribers. Best effort: a standings hiccup never fails
// the finish that produced it.
func (u *RankUpdater) publish(ctx context.Context, player domain.Player) {
	if u.standings == nil {
		return
	}
	if err := u.standings.Record(ctx, player); err != nil {
		log.Printf("standings record failed for player %s: %v", player.ID, err)
		return
	}
	if u.feed == nil {
		return
	}
	table, err := u.standings.Top(ctx, u.tableSize)
	if err != nil {
		log.Printf("standings read failed: %v", err)
		return
	}
	u.feed.Broadcast(table)
}
