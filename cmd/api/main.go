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

	"interview-prep-agent/internal/config"
	"interview-prep-agent/internal/handlers"
	"interview-prep-agent/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	audit := services.NewAuditLogger(cfg.Storage.UploadPath)
	log.Println("✅ Storage services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize the optional question bank
	var questionBank services.QuestionBank
	if cfg.QuestionBankEnabled() {
		questionBank, err = services.NewQuestionBank(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize question bank: %v", err)
		}
		if err := questionBank.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize question bank collection: %v", err)
		}
		log.Println("✅ Question bank initialized successfully")
	} else {
		log.Println("ℹ️  Question bank disabled (QDRANT_URL not set)")
	}

	// Initialize the pipeline
	generator := services.NewSchemaGenerator(
		geminiService,
		cfg.Pipeline.GenerationTimeout,
		float32(cfg.Pipeline.Temperature),
	)

	questionStage := services.NewQuestionStage(generator, geminiService, questionBank)
	critiqueStage := services.NewCritiqueStage(generator)
	interviewer := services.NewSimulatedInterviewer(geminiService, float32(cfg.Pipeline.Temperature))
	runner := services.NewPipelineRunner(questionStage, interviewer, critiqueStage)
	log.Println("✅ Pipeline initialized")

	// Initialize stores and worker
	sessions := services.NewSessionStore()
	runs := services.NewRunStore()

	worker := services.NewWorker(runs, runner, cfg.Pipeline.WorkerConcurrency)
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(storageService, extractor, audit, cfg.Storage.MaxFileSize)
	startHandler := handlers.NewStartHandler(questionStage, sessions)
	finishHandler := handlers.NewFinishHandler(critiqueStage, sessions)
	simulateHandler := handlers.NewSimulateHandler(runs, worker)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Prep Agent API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/start", startHandler.HandleStart)
	api.Post("/finish", finishHandler.HandleFinish)
	api.Post("/simulate", simulateHandler.HandleSimulate)
	api.Get("/simulate/:id", simulateHandler.HandleGetSimulation)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Prep Agent API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/start",
				"POST /api/v1/finish",
				"POST /api/v1/simulate",
				"GET /api/v1/simulate/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
