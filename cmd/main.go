package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/executor/gojudge"
	"gitlab.com/codejudge.net/internal/adapter/executor/process"
	"gitlab.com/codejudge.net/internal/adapter/memory"
	"gitlab.com/codejudge.net/internal/adapter/metrics"
	"gitlab.com/codejudge.net/internal/adapter/postgres/questionrepository"
	"gitlab.com/codejudge.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codejudge.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codejudge.net/internal/adapter/redis/questioncache"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	auth2 "gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	logger2 "gitlab.com/codejudge.net/internal/global/logger"
	http2 "gitlab.com/codejudge.net/internal/http"
)

type storage struct {
	questions   secondary.QuestionRepository
	submissions secondary.SubmissionRepository
	users       secondary.UserPort
	closers     []io.Closer
}

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	logger2.SetDebug(sysCfg.DebugMode)
	logger := logger2.Logger
	defer logger.Sync()
	logger.Info("Starting code judge service", "storage", sysCfg.StorageDriver, "executor", sysCfg.ExecutorConfig.Driver)

	// SECONDARY PORTS
	store, err := setupStorage(sysCfg, logger)
	if err != nil {
		logger.Error("Failed to set up storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		for _, c := range store.closers {
			_ = c.Close()
		}
	}()

	executor, closeExecutor, err := setupExecutor(sysCfg.ExecutorConfig, logger)
	if err != nil {
		logger.Error("Failed to set up executor", "error", err)
		os.Exit(1)
	}
	defer closeExecutor()

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	seeded, err := seedStorage(context.Background(), sysCfg.SeedConfig, store, jwtProvider, logger)
	if err != nil {
		logger.Error("Failed to seed storage", "error", err)
		os.Exit(1)
	}
	if seeded == 0 && sysCfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("In-memory storage is empty, set QUESTIONS_DIR and SEED_USER to populate it")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	//services
	judgeSvc := judge.NewJudgeService(store.questions, store.submissions, store.users, executor,
		metrics.New(registry), logger.Named("judge"), sysCfg.JudgeConfig)
	var ggAuth auth2.IAuthService
	if sysCfg.GGAuthConfig.Enabled() {
		ggAuth = auth2.NewGoogleAuthService(store.users, jwtProvider, sysCfg.GGAuthConfig)
	}
	localAuth := auth2.NewLocalAuthService(store.users, jwtProvider)
	serviceProvider := http2.NewServiceProvider(judgeSvc, jwtProvider, ggAuth, localAuth)

	//server
	httpServer := http2.NewServer(sysCfg.HTTPPort, "codejudge", *serviceProvider, sysCfg.GGAuthConfig, registry, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init http server", "error", err)
		os.Exit(1)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 30*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

func setupStorage(cfg *config.AppConfig, logger primary.Logger) (*storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &storage{
			questions:   memory.NewQuestionStore(),
			submissions: memory.NewSubmissionStore(),
			users:       memory.NewUserStore(),
		}, nil
	}

	db, err := setupDatabase(cfg.PostgresConfig)
	if err != nil {
		return nil, err
	}
	schema := cfg.PostgresConfig.Schema
	s := &storage{
		questions:   questionrepository.NewQuestionRepository(db, logger, schema),
		submissions: submissionrepository.NewSubmissionRepository(db, logger, schema),
		users:       userrepository.New(db, logger, schema),
		closers:     []io.Closer{db},
	}

	if cfg.RedisConfig.QuestionTTL > 0 {
		redisClient := setupRedis(cfg.RedisConfig)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, question cache disabled", "addr", cfg.RedisConfig.Url, "error", err)
			_ = redisClient.Close()
			return s, nil
		}
		s.questions = questioncache.New(s.questions, redisClient, cfg.RedisConfig.QuestionTTL, logger)
		s.closers = append(s.closers, redisClient)
	}
	return s, nil
}

func setupExecutor(cfg *config.ExecutorConfig, logger primary.Logger) (secondary.CodeExecutor, func(), error) {
	if cfg.Driver == config.ExecutorDriverGoJudge {
		executor, conn, err := gojudge.Dial(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return executor, func() { _ = conn.Close() }, nil
	}
	executor, err := process.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return executor, func() {}, nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
