package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/camping-backend/config"
	"github.com/ikkim/camping-backend/internal/app/controller"
	"github.com/ikkim/camping-backend/internal/app/repository"
	"github.com/ikkim/camping-backend/internal/app/service"
	"github.com/ikkim/camping-backend/internal/db"
	"github.com/ikkim/camping-backend/internal/middleware"
	"github.com/ikkim/camping-backend/internal/router"
	"github.com/ikkim/camping-backend/internal/scheduler"
	"github.com/ikkim/camping-backend/internal/storage"
	"github.com/ikkim/camping-backend/pkg/logger"
	"github.com/ikkim/camping-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	format := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		format = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      format,
		EnableColor: format == "console",
	})

	logger.Info("Starting Camping Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis는 선택 사항. 없으면 캐시 없이, 락 없이 동작한다.
	var (
		rankingCache service.RankingCache
		jobLocker    scheduler.JobLocker
	)
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, running without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			store := redis.NewStore(redis.GetClient(), "camping:")
			rankingCache = store
			jobLocker = store
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	conn := db.GetDB()
	boardRepo := repository.NewBoardRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	memberRepo := repository.NewMemberRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)

	// Initialize services
	boardService := service.NewBoardService(
		boardRepo,
		memberRepo,
		service.WithRankingWindow(cfg.Ranking.Window),
		service.WithRankingCache(rankingCache, cfg.Ranking.CacheTTL),
	)
	commentService := service.NewCommentService(commentRepo, boardRepo, memberRepo)
	reviewService := service.NewReviewService(reviewRepo, memberRepo)
	memberService := service.NewMemberService(memberRepo)
	memberRankService := service.NewMemberRankService(memberRepo, time.Now, cfg.Ranking.Window)
	gradeService := service.NewGradeService(memberRepo)
	imageService := service.NewImageService(storage.NewS3Storage(context.Background(), cfg.S3))

	// Initialize scheduler
	gradeScheduler := scheduler.NewGradeScheduler(cfg.Scheduler.GradeCron, gradeService, jobLocker, cfg.Scheduler.GradeLockTTL)
	if err := gradeScheduler.Start(); err != nil {
		logger.Fatal("Failed to start grade scheduler", err)
	}

	// Setup router
	r := router.NewRouter(
		controller.NewBoardController(boardService),
		controller.NewCommentController(commentService),
		controller.NewReviewController(reviewService),
		controller.NewMemberController(memberService, memberRankService),
		controller.NewUploadController(imageService),
		middleware.NewIdentityMiddleware(cfg.Identity.EmailHeader),
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	gradeScheduler.Stop()

	logger.Info("Server stopped successfully")
}
