package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/synapse-net/go-backend/internal/cfg"
	v1Http "github.com/synapse-net/go-backend/internal/delivery/v1/http"
	"github.com/synapse-net/go-backend/internal/infrastructure/classifier"
	"github.com/synapse-net/go-backend/internal/infrastructure/embedding"
	"github.com/synapse-net/go-backend/internal/infrastructure/kafka"
	"github.com/synapse-net/go-backend/internal/metrics"
	"github.com/synapse-net/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/synapse-net/go-backend/internal/repository/pgdb/converter"
	qdrantRepo "github.com/synapse-net/go-backend/internal/repository/qdrant"
	"github.com/synapse-net/go-backend/internal/repository/redis"
	redisConv "github.com/synapse-net/go-backend/internal/repository/redis/converter"
	"github.com/synapse-net/go-backend/internal/usecase"
	"github.com/synapse-net/go-backend/pkg/clients"
	"github.com/synapse-net/go-backend/pkg/closer"
	"github.com/synapse-net/go-backend/pkg/e"
	"github.com/synapse-net/go-backend/pkg/hexgrid"
	"github.com/synapse-net/go-backend/pkg/logger"
	"github.com/synapse-net/go-backend/pkg/postgres"
)

const (
	clientInitTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	kafkaTopicTimeout = 15 * time.Second
)

func Run() {
	logger := logger.NewSlogLogger()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	cl := closer.NewCloser(shutdownTimeout / 2)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		logger.Errorf(err, "failed to initialize qdrant")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), clientInitTimeout)
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		logger.Errorf(err, "failed to initialize qdrant collection")
		os.Exit(1)
	}
	qdrantCancel()

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), clientInitTimeout)
	if err := redisClient.Ping(redisCtx); err != nil {
		redisCancel()
		logger.Errorf(err, "failed to connect to redis")
		os.Exit(1)
	}
	redisCancel()
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		logger.Errorf(err, "failed to initialize kafka producer")
		os.Exit(1)
	}
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		logger.Errorf(err, "failed to ensure kafka topic")
		os.Exit(1)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	profileRepo := pgdb.NewProfileRepo(db.Pool, pgdbConv.NewProfileConverter())
	postRepo := pgdb.NewPostRepo(db.Pool, pgdbConv.NewPostConverter())
	interactionRepo := pgdb.NewInteractionRepo(db.Pool, pgdbConv.NewInteractionConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())
	goalVectorRepo := qdrantRepo.NewGoalVectorRepo(qdrantClient.Client, cfg.Qdrant)
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewProfileCardConverter(), cfg.Redis, logger)

	spatial := hexgrid.NewIndex(cfg.Spatial.Resolution)
	embedder := embedding.NewOpenAIEmbedder(cfg.Embedding, logger)
	feedbackClassifier := initClassifier(logger, cfg)

	matchingUC := usecase.NewMatchingUC(profileRepo, interactionRepo, goalVectorRepo, spatial, logger, cfg.Spatial.DefaultRings, cfg.Embedding.Dimension)
	feedUC := usecase.NewFeedUC(postRepo, profileRepo, interactionRepo, embedder, logger, cfg.Embedding.Dimension)
	impactUC := usecase.NewImpactUC(profileRepo, postRepo, interactionRepo, outboxRepo, cacheRepo, feedbackClassifier, db.Pool, logger)
	profileUC := usecase.NewProfileUC(profileRepo, goalVectorRepo, cacheRepo, embedder, spatial, db.Pool, logger)

	metrics.RegisterMatchingMetrics()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)
	outboxWorker.Start(workerCtx)
	cl.Add(func(ctx context.Context) error {
		workerCancel()
		outboxWorker.Stop()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(matchingUC, feedUC, impactUC, profileUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	}

	logger.Infof("Application shutdown complete")
	if appErr != nil {
		os.Exit(1)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func initClassifier(logger logger.Logger, cfg *config.Config) usecase.FeedbackClassifier {
	if cfg.Impact.Classifier == "llm" {
		return classifier.NewLLMClassifier(cfg.Impact, logger)
	}

	return classifier.NewRuleClassifier()
}
