package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-league-service/internal/app"
	"quiz-league-service/internal/config"
	"quiz-league-service/internal/domain"
	"quiz-league-service/internal/infra/memory"
	pginfra "quiz-league-service/internal/infra/postgres"
	redisinfra "quiz-league-service/internal/infra/redis"
	transport "quiz-league-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz league server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)

	var catalog app.QuizCatalog
	var players app.PlayerRepository
	if pool != nil {
		loader := pginfra.NewCatalog(pool)
		if redisClient != nil {
			catalog = redisinfra.NewQuizCatalog(redisClient, loader, catalogTTL)
		} else {
			catalog = memory.NewQuizCatalog(loader, catalogTTL)
		}
		players = pginfra.NewPlayerRepository(pool)
	} else {
		loader := memory.NewStaticCatalogLoader(sampleQuizzes(), sampleQuestions())
		catalog = memory.NewQuizCatalog(loader, catalogTTL)
		players = memory.NewPlayerRepository(samplePlayers()...)
	}

	var store app.SessionStore
	var board app.StandingsBoard
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient)
		board = redisinfra.NewStandingsBoard(redisClient)
	} else {
		store = memory.NewSessionStore()
		board = memory.NewStandingsBoard()
	}

	feed := app.NewStandingsFeed()
	rank := app.NewRankUpdater(players).WithStandings(board, feed, cfg.Standings.Size)
	engine := app.NewGameEngine(store, catalog, rank)

	gameHandler := transport.NewGameHandler(engine, board, cfg.Standings.Size)
	wsHandler := transport.NewStandingsWSHandler(feed, board, cfg.Standings.Size)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	gameHandler.Register(mux)
	mux.HandleFunc("/ws/standings", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz league service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Sample content lets the service run without Postgres; swap in real data by
// configuring postgres.url.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:            "quiz-1",
			AuthorID:      "p1",
			Title:         "Capitals of Europe",
			Description:   "Four quick geography questions",
			AvailableTime: 90 * time.Second,
			Verified:      true,
			Score:         100,
		},
	}
}

func sampleQuestions() map[string][]domain.Question {
	return map[string][]domain.Question{
		"quiz-1": {
			{ID: "q1", QuizID: "quiz-1", Text: "Capital of France?", OptionA: "Paris", OptionB: "Lyon", OptionC: "Nice", OptionD: "Lille", CorrectAnswer: domain.AnswerA},
			{ID: "q2", QuizID: "quiz-1", Text: "Capital of Spain?", OptionA: "Seville", OptionB: "Madrid", OptionC: "Valencia", OptionD: "Bilbao", CorrectAnswer: domain.AnswerB},
			{ID: "q3", QuizID: "quiz-1", Text: "Capital of Italy?", OptionA: "Milan", OptionB: "Naples", OptionC: "Rome", OptionD: "Turin", CorrectAnswer: domain.AnswerC},
			{ID: "q4", QuizID: "quiz-1", Text: "Capital of Germany?", OptionA: "Munich", OptionB: "Hamburg", OptionC: "Cologne", OptionD: "Berlin", CorrectAnswer: domain.AnswerD},
		},
	}
}

func samplePlayers() []domain.Player {
	return []domain.Player{
		{ID: "p1", DisplayName: "Alice", Score: 0, League: domain.LeagueNone},
		{ID: "p2", DisplayName: "Bob", Score: 950, League: domain.LeagueNone},
	}
}
