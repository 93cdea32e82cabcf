package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"quiz-league-service/internal/app"
	"quiz-league-service/internal/domain"
	pginfra "quiz-league-service/internal/infra/postgres"
	pgmigrations "quiz-league-service/internal/infra/postgres/migrations"
	redisinfra "quiz-league-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestTimedAttemptEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedContent(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	catalog := redisinfra.NewQuizCatalog(redisClient, pginfra.NewCatalog(pool), 5*time.Minute)
	store := redisinfra.NewSessionStore(redisClient)
	board := redisinfra.NewStandingsBoard(redisClient)
	players := pginfra.NewPlayerRepository(pool)
	feed := app.NewStandingsFeed()
	rank := app.NewRankUpdater(players).WithStandings(board, feed, 10)
	engine := app.NewGameEngine(store, catalog, rank)

	if err := engine.StartAttempt(ctx, "p1", "quiz-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := engine.StartAttempt(ctx, "p1", "quiz-1"); !errors.Is(err, domain.ErrAttemptInProgress) {
		t.Fatalf("expected duplicate start rejected, got %v", err)
	}

	reward, err := engine.FinishAttempt(ctx, "p1", "quiz-1", map[string]domain.Answer{
		"q1": domain.AnswerA,
		"q2": domain.AnswerB,
		"q3": domain.AnswerC,
		"q4": domain.AnswerD,
	})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if reward != 100 {
		t.Fatalf("expected full budget 100, got %d", reward)
	}

	player, err := players.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if player.Score != 1050 || player.League != domain.LeagueBronze {
		t.Fatalf("expected 1050/bronze, got %d/%s", player.Score, player.League)
	}

	if _, err := engine.FinishAttempt(ctx, "p1", "quiz-1", nil); !errors.Is(err, domain.ErrNoActiveAttempt) {
		t.Fatalf("expected consumed attempt, got %v", err)
	}

	table, err := board.Top(ctx, 10)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(table) != 1 || table[0].PlayerID != "p1" || table[0].Score != 1050 {
		t.Fatalf("unexpected standings %+v", table)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedContent(t *testing.T, ctx context.Context, dsn string) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stmts := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO players (id, display_name, score, league) VALUES (?, ?, ?, ?)`,
			[]interface{}{"p1", "Alice", 950, "no_league"}},
		{`INSERT INTO quizzes (id, author_id, title, description, available_time_seconds, verified, score) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			[]interface{}{"quiz-1", "p1", "Capitals", "Geography quiz", 90, true, 100}},
		{`INSERT INTO questions (id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]interface{}{"q1", "quiz-1", "Capital of France?", "Paris", "Lyon", "Nice", "Lille", "a"}},
		{`INSERT INTO questions (id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]interface{}{"q2", "quiz-1", "Capital of Spain?", "Seville", "Madrid", "Valencia", "Bilbao", "b"}},
		{`INSERT INTO questions (id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]interface{}{"q3", "quiz-1", "Capital of Italy?", "Milan", "Naples", "Rome", "Turin", "c"}},
		{`INSERT INTO questions (id, quiz_id, question, option_a, option_b, option_c, option_d, correct_answer) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			[]interface{}{"q4", "quiz-1", "Capital of Germany?", "Munich", "Hamburg", "Cologne", "Berlin", "d"}},
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
