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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"icnpm/rfp-analyzer/internal/config"
	"icnpm/rfp-analyzer/internal/handlers"
	"icnpm/rfp-analyzer/internal/repositories"
	"icnpm/rfp-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	runRepo := repositories.NewRunRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	validatorService := services.NewValidatorService(cfg.Storage.MaxFileSize)
	inspectorService := services.NewInspectorService()
	uploaderService := services.NewUploaderService(cfg.Evaluator.BaseURL, cfg.Evaluator.UploadTimeout)
	evaluatorService := services.NewEvaluatorService(
		cfg.Evaluator.BaseURL,
		cfg.Evaluator.GuidePath,
		cfg.Evaluator.EvalTimeout,
	)
	normalizerService := services.NewNormalizerService()
	orchestratorService := services.NewOrchestratorService(
		uploaderService,
		evaluatorService,
		normalizerService,
		runRepo,
	)
	log.Println("✅ Services initialized successfully")

	// Probe the evaluation backend; fire-and-forget, result only logged
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := evaluatorService.Probe(ctx); err != nil {
			log.Printf("⚠️  Evaluation backend probe failed: %v\n", err)
			return
		}
		log.Printf("✅ Evaluation backend reachable at %s\n", cfg.Evaluator.BaseURL)
	}()

	// Initialize Handlers
	processHandler := handlers.NewProcessHandler(
		orchestratorService,
		validatorService,
		inspectorService,
	)
	statusHandler := handlers.NewStatusHandler(orchestratorService)
	resultHandler := handlers.NewResultHandler(runRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app; body limit covers both documents in one request
	app := fiber.New(fiber.Config{
		AppName:      "RFP Analyzer Gateway",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize)*2 + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
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
	api.Post("/process", processHandler.HandleProcess)
	api.Get("/status", statusHandler.HandleGetStatus)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/runs", resultHandler.HandleListRuns)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "RFP Analyzer Gateway",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/process",
				"GET /api/v1/status",
				"GET /api/v1/result/:id",
				"GET /api/v1/runs",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
