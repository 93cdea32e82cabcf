package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-league-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Catalog loads quiz content from Postgres. It implements the CatalogLoader
// consumed by the caching catalogs.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, []domain.Question, error) {
	var (
		quiz    domain.Quiz
		seconds int64
	)
	err := c.pool.QueryRow(ctx,
		`SELECT id, author_id, title, description, available_time_seconds, verified, score
		 FROM quizzes WHERE id=$1`, quizID).
		Scan(&quiz.ID, &quiz.AuthorID, &quiz.Title, &quiz.Description, &seconds, &quiz.Verified, &quiz.Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, nil, fmt.Errorf("load quiz: %w", err)
	}
	quiz.AvailableTime = time.Duration(seconds) * time.Second

	rows, err := c.pool.Query(ctx,
		`SELECT id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer
		 FROM questions WHERE quiz_id=$1 ORDER BY id`, quizID)
	if err != nil {
		return domain.Quiz{}, nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var correct string
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &correct); err != nil {
			return domain.Quiz{}, nil, fmt.Errorf("scan question: %w", err)
		}
		q.CorrectAnswer = domain.Answer(correct)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, nil, fmt.Errorf("iterate questions: %w", err)
	}
	return quiz, questions, nil
}
