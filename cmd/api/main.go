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

	pkgvalidator "github.com/meetingintel-team/meeting-intel/pkg/validator"

	"github.com/meetingintel-team/meeting-intel/internal/adapter/handler"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/repository"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/cache"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/database"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/anthropic"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/fireflies"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/openai"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/telegram"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/todoist"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/storage"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/dispatch"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/ingest"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/rag"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/summarize"
	"github.com/meetingintel-team/meeting-intel/pkg/config"
)

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

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Redis-backed lock and dedupe store. Without Redis the
	// pipeline falls back to in-process locks and the DB constraints.
	log.Println("📦 Connecting to Redis...")
	var lockStore cache.Store
	redisStore, err := cache.NewRedisStore(cfg)
	if err != nil {
		logger.Warn("⚠️ Redis unavailable, using in-memory locks", zap.Error(err))
		lockStore = cache.NewMemoryStore()
	} else {
		defer redisStore.Close()
		lockStore = redisStore
	}

	// Initialize object storage for payload archival
	log.Println("📦 Connecting to object storage...")
	var archiver ingest.Archiver
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		logger.Warn("⚠️ Object storage unavailable, payload archival disabled", zap.Error(err))
	} else {
		archiver = minioClient
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	clientRepo := repository.NewClientRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	ragRepo := repository.NewRAGRepository(db)
	dispatchRepo := repository.NewDispatchRepository(db)
	hypothesisRepo := repository.NewHypothesisRepository(db)

	// Initialize provider clients
	log.Println("🤖 Initializing provider clients...")
	firefliesClient := fireflies.NewClient(cfg.Fireflies.APIKey, cfg.Fireflies.BaseURL)
	anthropicClient := anthropic.NewClient(&cfg.Anthropic)
	openaiClient := openai.NewClient(&cfg.OpenAI)
	todoistClient := todoist.NewClient(cfg.Todoist.APIToken, cfg.Todoist.BaseURL)
	notifier := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.BaseURL, cfg.Telegram.DefaultChatID)
	if !notifier.Enabled() {
		log.Println("⚠️  Telegram notifications disabled (no bot token)")
	}

	// Initialize vector index and warm it from the embedding store
	log.Println("🧠 Building vector index...")
	vectorIndex := rag.NewMemoryIndex()
	chunker := rag.NewChunker(cfg.Pipeline.ChunkSize, cfg.Pipeline.ChunkOverlap)
	indexer := rag.NewIndexer(meetingRepo, ragRepo, openaiClient, vectorIndex, chunker, logger)
	if err := indexer.WarmUp(); err != nil {
		log.Fatalf("Failed to warm vector index: %v", err)
	}
	retriever := rag.NewRetriever(meetingRepo, ragRepo, openaiClient, vectorIndex, anthropicClient,
		cfg.Pipeline.RetrievalTopK, logger)

	// Initialize pipeline services
	log.Println("⚙️  Initializing pipeline services...")
	dispatchService := dispatch.NewService(dispatchRepo, clientRepo, todoistClient, logger)
	summarizeService := summarize.NewService(
		meetingRepo, summaryRepo, clientRepo,
		anthropicClient, lockStore, dispatchService, indexer, notifier,
		time.Duration(cfg.Pipeline.SummaryLockTTL)*time.Second,
		logger,
	)
	ingestService := ingest.NewService(
		meetingRepo, firefliesClient, archiver, lockStore,
		time.Duration(cfg.Pipeline.WebhookDedupeTTL)*time.Second,
		logger,
	)

	// Start recovery worker
	recoveryWorker := ingest.NewWorker(
		ingestService, meetingRepo,
		time.Duration(cfg.Pipeline.WorkerInterval)*time.Second,
		2*time.Duration(cfg.Pipeline.SummaryLockTTL)*time.Second,
		logger,
	)
	recoveryWorker.Start()
	defer recoveryWorker.Stop()

	// Initialize handlers
	log.Println("🛣️  Setting up routes...")
	webhookHandler := handler.NewWebhookHandler(ingestService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingRepo, summaryRepo, dispatchRepo, summarizeService, dispatchService, indexer, logger)
	ragHandler := handler.NewRAGHandler(retriever, indexer, logger)
	clientHandler := handler.NewClientHandler(clientRepo, logger)
	leadHandler := handler.NewLeadHandler(leadRepo, logger)
	hypothesisHandler := handler.NewHypothesisHandler(hypothesisRepo, logger)

	router := handler.NewRouter(cfg, webhookHandler, meetingHandler, ragHandler, clientHandler, leadHandler, hypothesisHandler)
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
