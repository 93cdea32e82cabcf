package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quiz-league-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz content from a backing store (e.g., Postgres).
type CatalogLoader interface {
	LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, []domain.Question, error)
}

// QuizCatalog caches quiz content with TTL to avoid repeated DB hits.
type QuizCatalog struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	questions []domain.Question
	expiresAt time.Time
}

func NewQuizCatalog(loader CatalogLoader, ttl time.Duration) *QuizCatalog {
	return &QuizCatalog{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuiz),
	}
}

func (c *QuizCatalog) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	entry, err := c.load(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	return entry.quiz, nil
}

func (c *QuizCatalog) GetQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	entry, err := c.load(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return entry.questions, nil
}

func (c *QuizCatalog) load(ctx context.Context, quizID string) (cachedQuiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry, nil
		}
		c.mu.RUnlock()

		quiz, questions, err := c.loader.LoadQuiz(ctx, quizID)
		if err != nil {
			return cachedQuiz{}, err
		}

		entry := cachedQuiz{
			quiz:      quiz,
			questions: questions,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Lock()
		c.cache[quizID] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return cachedQuiz{}, err
	}
	return result.(cachedQuiz), nil
}

// StaticCatalogLoader is a loader backed by in-memory maps (useful for tests/demos).
type StaticCatalogLoader struct {
	quizzes   map[string]domain.Quiz
	questions map[string][]domain.Question
}

func NewStaticCatalogLoader(quizzes map[string]domain.Quiz, questions map[string][]domain.Question) *StaticCatalogLoader {
	return &StaticCatalogLoader{quizzes: quizzes, questions: questions}
}

func (l *StaticCatalogLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, []domain.Question, error) {
	quiz, ok := l.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, nil, domain.ErrQuizNotFound
	}
	return quiz, l.questions[quizID], nil
}

func (c *QuizCatalog) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
