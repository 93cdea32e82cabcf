package app

import (
	"context"
	"fmt"
	"time"

	"quiz-league-service/internal/domain"
)

// AttemptKey identifies the single live attempt a player can have per quiz.
type AttemptKey struct {
	PlayerID string
	QuizID   string
}

// SessionStore holds in-flight attempt entries with a per-key TTL (in-memory, Redis, etc).
// An entry that expired and an entry that never existed are indistinguishable.
type SessionStore interface {
	Set(ctx context.Context, key AttemptKey, budget int, ttl time.Duration) error
	Get(ctx context.Context, key AttemptKey) (int, bool, error)
	Exists(ctx context.Context, key AttemptKey) (bool, error)
	Delete(ctx context.Context, key AttemptKey) error
}

// QuizCatalog is the read-only view of quiz content owned by the CRUD layer.
type QuizCatalog interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// PlayerRepository loads and persists player records.
type PlayerRepository interface {
	Get(ctx context.Context, playerID string) (domain.Player, error)
	Save(ctx context.Context, player domain.Player) error
}

// GameEngine owns the timed-attempt state machine: start snapshots the quiz's
// point budget into the session store under the quiz's time limit, finish
// consumes the entry exactly once and credits the reward.
type GameEngine struct {
	store   SessionStore
	catalog QuizCatalog
	rank    *RankUpdater
}

func NewGameEngine(store SessionStore, catalog QuizCatalog, rank *RankUpdater) *GameEngine {
	return &GameEngine{store: store, catalog: catalog, rank: rank}
}

// StartAttempt opens a timed attempt for (player, quiz). The quiz must exist
// and be verified, and the player must not already have a live attempt for it;
// a duplicate start would let them reroll the clock or double-claim the reward.
func (e *GameEngine) StartAttempt(ctx context.Context, playerID, quizID string) error {
	quiz, err := e.catalog.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if !quiz.Verified {
		return domain.ErrQuizNotVerified
	}

	key := AttemptKey{PlayerID: playerID, QuizID: quizID}
	exists, err := e.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check attempt: %w", err)
	}
	if exists {
		return domain.ErrAttemptInProgress
	}

	// Whole seconds only; sub-second remainders are dropped.
	ttl := time.Duration(int64(quiz.AvailableTime.Seconds())) * time.Second
	if err := e.store.Set(ctx, key, quiz.Score, ttl); err != nil {
		return fmt.Errorf("store attempt: %w", err)
	}
	return nil
}

// FinishAttempt consumes the attempt entry for (player, quiz), scores the
// submitted answers against the budget snapshotted at start, credits the
// player, and returns the integer reward. An absent entry means the attempt
// expired or was never started; the two cases are deliberately collapsed.
func (e *GameEngine) FinishAttempt(ctx context.Context, playerID, quizID string, answers map[string]domain.Answer) (int, error) {
	if _, err := e.catalog.GetQuiz(ctx, quizID); err != nil {
		return 0, err
	}

	key := AttemptKey{PlayerID: playerID, QuizID: quizID}
	budget, ok, err := e.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("load attempt: %w", err)
	}
	if !ok {
		return 0, domain.ErrNoActiveAttempt
	}

	questions, err := e.catalog.GetQuestions(ctx, quizID)
	if err != nil {
		return 0, err
	}

	reward := ComputeReward(answers, questions, budget)
	if _, err := e.rank.Apply(ctx, playerID, reward); err != nil {
		return 0, err
	}

	// Delete only after the reward landed, so a failed player write leaves the
	// entry reusable until its TTL runs out. Deleting an already-gone entry is a no-op.
	if err := e.store.Delete(ctx, key); err != nil {
		return 0, fmt.Errorf("clear attempt: %w", err)
	}
	return reward, nil
}
