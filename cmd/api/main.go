package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/virajhegde24/Code4Edtech-Project/internal/config"
	"github.com/virajhegde24/Code4Edtech-Project/internal/handlers"
	"github.com/virajhegde24/Code4Edtech-Project/internal/logger"
	"github.com/virajhegde24/Code4Edtech-Project/internal/repositories"
	"github.com/virajhegde24/Code4Edtech-Project/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected and migrated")

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	resultRepo := repositories.NewResultRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	textExtractor := services.NewTextExtractorService()
	extractor := services.NewSkillExtractor()
	profiler := services.NewCandidateProfiler()
	matcher := services.NewMatcher(services.MatcherConfig{
		StrongThreshold:  cfg.Matcher.StrongThreshold,
		PartialThreshold: cfg.Matcher.PartialThreshold,
	})
	composer := services.NewFeedbackComposer()

	evaluatorService := services.NewEvaluatorService(
		jobRepo,
		resultRepo,
		extractor,
		profiler,
		matcher,
		composer,
		zlog,
	)
	zlog.Info("evaluator service initialized",
		zap.Int("strong_threshold", cfg.Matcher.StrongThreshold),
		zap.Int("partial_threshold", cfg.Matcher.PartialThreshold),
	)

	// Initialize and start the batch worker
	worker := services.NewWorker(evaluatorService, cfg.Worker.Concurrency, zlog)
	worker.Start(context.Background())

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(
		jobRepo,
		storageService,
		textExtractor,
		evaluatorService,
		cfg.Storage.MaxFileSize,
	)
	evaluateHandler := handlers.NewEvaluationHandler(
		evaluatorService,
		jobRepo,
		worker,
		storageService,
		textExtractor,
		cfg.Storage.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(resultRepo)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Relevance API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/jobs", jobHandler.HandleUpsertJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:job_id", jobHandler.HandleGetJob)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/evaluate/batch", evaluateHandler.HandleEvaluateBatch)
	api.Get("/results", resultHandler.HandleListResults)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Relevance API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:job_id",
				"POST /api/v1/evaluate",
				"POST /api/v1/evaluate/batch",
				"GET /api/v1/results",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
