package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskarena/backend/api/handler"
	"github.com/taskarena/backend/internal/config"
	"github.com/taskarena/backend/internal/infrastructure/buffer"
	"github.com/taskarena/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskarena/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskarena/backend/internal/infrastructure/redis"
	"github.com/taskarena/backend/internal/middleware"
	"github.com/taskarena/backend/internal/router"
	"github.com/taskarena/backend/internal/services"
	"github.com/taskarena/backend/internal/services/lifecycle"
	"github.com/taskarena/backend/pkg/httpcontext"
	"github.com/taskarena/backend/pkg/logger"
	"github.com/taskarena/backend/repository/postgres"
	redisRepo "github.com/taskarena/backend/repository/redis"
	authUC "github.com/taskarena/backend/usecase/auth"
	friendUC "github.com/taskarena/backend/usecase/friend"
	leaderboardUC "github.com/taskarena/backend/usecase/leaderboard"
	profileUC "github.com/taskarena/backend/usecase/profile"
	statsUC "github.com/taskarena/backend/usecase/stats"
	taskUC "github.com/taskarena/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	friendRepo := postgres.NewFriendRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)
	boardCache := redisRepo.NewLeaderboardCache(redisClient, cfg.Leaderboard.CacheTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	reconciler := services.NewEdgeReconciler(friendRepo, zapLogger, services.ReconcilerConfig{
		Interval:  cfg.Reconciler.Interval,
		BatchSize: cfg.Reconciler.BatchSize,
	})
	reconciler.Start()
	manager.Register("edge_reconciler", func(ctx context.Context) error {
		reconciler.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	taskUseCase := taskUC.New(taskRepo, bufferBridge, zapLogger)
	statsUseCase := statsUC.New(taskRepo, zapLogger)
	friendUseCase := friendUC.New(userRepo, friendRepo, zapLogger)
	leaderboardUseCase := leaderboardUC.New(userRepo, friendRepo, statsUseCase, boardCache, zapLogger, cfg.Leaderboard.Fanout)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile:     apiHandler.NewProfileHandler(profileUseCase, statsUseCase, ctxAdapter, zapLogger),
		Task:        apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Friend:      apiHandler.NewFriendHandler(friendUseCase, ctxAdapter, zapLogger),
		Leaderboard: apiHandler.NewLeaderboardHandler(leaderboardUseCase, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
