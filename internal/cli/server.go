package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/app"
	"github.com/SSHRIHARI006/GyanForge/internal/config"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/gemini"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/pdf"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/postgres"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/youtube"
	"github.com/SSHRIHARI006/GyanForge/internal/logger"
	transport "github.com/SSHRIHARI006/GyanForge/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the learning backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth secret not configured")
	}

	log, err := logger.New(cfg.Log.Environment)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var (
		store     cache.Store
		readiness []transport.Pinger
	)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = cache.NewRedisStore(redisClient)
		readiness = append(readiness, pingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
		log.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = cache.NewMemoryStore()
		log.Info("no redis configured, using in-memory cache")
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	readiness = append(readiness, pingFunc(pool.Ping))

	users := postgres.NewUserRepository(pool)
	modules := postgres.NewModuleRepository(pool)
	progress := postgres.NewProgressRepository(pool)

	var model app.TextModel
	if cfg.Gemini.APIKey != "" {
		model = gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model,
			config.TTLDuration(cfg.Gemini.Timeout, 30*time.Second))
	} else {
		log.Warn("no gemini api key, generation uses fallback content")
	}

	var searcher app.VideoSearcher
	if cfg.YouTube.APIKey != "" {
		searcher = youtube.NewClient(cfg.YouTube.APIKey,
			config.TTLDuration(cfg.YouTube.Timeout, 10*time.Second))
	} else {
		log.Warn("no youtube api key, recommendations use fallback videos")
	}

	lessonTTL := config.TTLDuration(cfg.Cache.LessonTTL, time.Hour)
	videoTTL := config.TTLDuration(cfg.Cache.VideoTTL, 2*time.Hour)

	videoService := app.NewVideoService(searcher, model, store, videoTTL, log)
	lessonService := app.NewLessonService(model, videoService, store, lessonTTL, log)
	quizService := app.NewQuizService(model, store, lessonTTL, log)
	pathService := app.NewPathService(model, store, lessonTTL, log)

	history := app.NewConversationStore(cfg.Chat.HistorySize,
		config.TTLDuration(cfg.Chat.HistoryTTL, time.Hour))
	chatService := app.NewChatService(model, history, log)

	authService := app.NewAuthService(users, cfg.Auth.Secret,
		config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour))

	renderer := pdf.NewLatexRenderer()

	router := transport.NewRouter(transport.RouterDeps{
		Auth:        transport.NewAuthHandler(authService, log),
		AuthMw:      transport.Authenticated(authService, log),
		Modules:     transport.NewModuleHandler(lessonService, modules, progress, renderer, store, log),
		Quizzes:     transport.NewQuizHandler(quizService, modules, progress, log),
		Chat:        transport.NewChatHandler(chatService, progress, log),
		Paths:       transport.NewPathHandler(pathService, progress, log),
		CORSOrigins: cfg.Server.CORSOrigins,
		Readiness:   readiness,
		Log:         log,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
