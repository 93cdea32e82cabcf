package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"quiz-league-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz content from the backing store (e.g., Postgres).
type CatalogLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, []domain.Question, error)
}

// QuizCatalog caches quiz content in Redis and falls back to a loader on cache miss.
// Content is stored as:  SET quiz:{quizID}:meta      {quiz JSON}
//                        SET quiz:{quizID}:questions {questions JSON}
type QuizCatalog struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCatalog(client *redis.Client, loader CatalogLoader, ttl time.Duration) *QuizCatalog {
	return &QuizCatalog{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type catalogContent struct {
	quiz      domain.Quiz
	questions []domain.Question
}

func (c *QuizCatalog) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	content, err := c.load(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	return content.quiz, nil
}

func (c *QuizCatalog) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	content, err := c.load(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return content.questions, nil
}

func (c *QuizCatalog) load(ctx context.Context, quizID string) (catalogContent, error) {
	if content, ok := c.fromCache(ctx, quizID); ok {
		return content, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if content, ok := c.fromCache(ctx, quizID); ok {
			return content, nil
		}

		quiz, questions, err := c.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return catalogContent{}, err
		}

		quizRaw, err := json.Marshal(quiz)
		if err != nil {
			return catalogContent{}, fmt.Errorf("marshal quiz: %w", err)
		}
		questionsRaw, err := json.Marshal(questions)
		if err != nil {
			return catalogContent{}, fmt.Errorf("marshal questions: %w", err)
		}

		ttl := c.ttlWithJitter()
		pipe := c.client.Pipeline()
		pipe.Set(ctx, c.metaKey(quizID), quizRaw, ttl)
		pipe.Set(ctx, c.questionsKey(quizID), questionsRaw, ttl)
		_, _ = pipe.Exec(ctx)

		return catalogContent{quiz: quiz, questions: questions}, nil
	})
	if err != nil {
		return catalogContent{}, err
	}
	return result.(catalogContent), nil
}

// fromCache returns the cached content if both keys are present and well-formed.
func (c *QuizCatalog) fromCache(ctx context.Context, quizID string) (catalogContent, bool) {
	quizRaw, err := c.client.Get(ctx, c.metaKey(quizID)).Result()
	if err != nil {
		return catalogContent{}, false
	}
	questionsRaw, err := c.client.Get(ctx, c.questionsKey(quizID)).Result()
	if err != nil {
		return catalogContent{}, false
	}

	var content catalogContent
	if err := json.Unmarshal([]byte(quizRaw), &content.quiz); err != nil {
		return catalogContent{}, false
	}
	if err := json.Unmarshal([]byte(questionsRaw), &content.questions); err != nil {
		return catalogContent{}, false
	}
	return content, true
}

func (c *QuizCatalog) metaKey(quizID string) string {
	return "quiz:" + quizID + ":meta"
}

func (c *QuizCatalog) questionsKey(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (c *QuizCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
