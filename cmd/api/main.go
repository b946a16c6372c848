package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/worker"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// @title           Meeting Summarizer API
// @version         1.0
// @description     API for meeting transcript analysis: transcript submission, audio transcription, and structured summaries.

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// Cap request bodies; audio uploads are bounded separately by the
	// transcription service.
	e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.Server.MaxBodyBytes)))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories. The memory driver keeps everything in
	// process for development; postgres is the production path.
	var (
		transcriptRepo repositories.TranscriptRepository
		summaryRepo    repositories.SummaryRepository
		jobRepo        repositories.JobRepository
	)
	if cfg.Database.Driver == "memory" {
		log.Println("📦 Using in-memory repositories (no database)")
		transcriptRepo = repository.NewMemoryTranscriptRepository()
		summaryRepo = repository.NewMemorySummaryRepository()
		jobRepo = repository.NewMemoryJobRepository()
	} else {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		transcriptRepo = repository.NewTranscriptRepository(db)
		summaryRepo = repository.NewSummaryRepository(db)
		jobRepo = repository.NewJobRepository(db)
	}

	// Initialize cache. Redis when enabled, in-process memory store otherwise.
	var cacheStore cache.Store
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg.Redis, cfg.GetRedisAddr())
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		cacheStore = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	// Initialize object storage. Startup tolerates an unreachable store;
	// audio uploads and transcript archival stay disabled until it is back.
	var audioStore *storage.AudioStore
	audioStore, err = storage.NewAudioStore(cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Object storage unavailable: %v (audio uploads and archival disabled)", err)
		audioStore = nil
	}

	// Initialize summarization components
	log.Println("🤖 Initializing summarization backends...")
	engine := analysis.NewEngine(logger)
	factory := summarizer.NewFactory(cfg.Summarization, engine, logger)
	summarizerService := summarizer.NewService(
		transcriptRepo,
		summaryRepo,
		jobRepo,
		factory,
		cacheStore,
		cfg.Redis.TTL,
		logger,
	)
	if audioStore != nil {
		summarizerService.SetArchive(audioStore)
	}

	// Initialize transcription provider
	var transcriber *pkgai.Transcriber
	if cfg.Transcription.AssemblyAIAPIKey != "" {
		log.Println("🎙️  Initializing transcription provider...")
		transcriber = pkgai.NewTranscriber(cfg.Transcription.AssemblyAIAPIKey)
	} else {
		log.Println("⚠️  No transcription API key configured, audio uploads disabled")
	}

	transcriptionService := transcription.NewService(
		transcriptRepo,
		jobRepo,
		audioStore,
		transcriber,
		summarizerService,
		logger,
	)

	// Initialize background workers
	log.Println("👷 Starting worker pool...")
	pool := worker.NewPool(jobRepo, summarizerService, transcriptionService, cfg.Worker, logger)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if err := pool.Start(workerCtx); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	transcriptHandler := handler.NewTranscriptHandler(summarizerService, transcriptionService, logger)
	summaryHandler := handler.NewSummaryHandler(summarizerService, logger)

	router := handler.NewRouter(cfg, transcriptHandler, summaryHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	workerCancel()
	pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
