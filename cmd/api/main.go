package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/config"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/handlers"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/logger"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/metrics"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/services"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/web"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	zapLogger, err := logger.New(cfg.Server.LogJSON, cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize model client
	ctx := context.Background()
	modelClient, err := newModelClient(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize model client: %v", err)
	}
	log.Printf("✅ Model client initialized (provider: %s, model: %s)", cfg.AI.Provider, modelClient.Model())

	// Initialize services
	renderer := services.NewPopplerRenderer(cfg.Analysis.PdftoppmPath, cfg.Analysis.ImageDPI)
	extractor := services.NewDocumentExtractor(renderer)
	composer := services.NewPromptComposer()

	resumeFormat, err := models.ParseResumeFormat(cfg.Analysis.ResumeFormat)
	if err != nil {
		log.Fatalf("❌ Invalid resume format: %v", err)
	}

	analyzer := services.NewAnalyzerService(
		extractor,
		composer,
		modelClient,
		zapLogger,
		resumeFormat,
		cfg.AI.RequestTimeout,
		cfg.AI.MaxLogLength,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, zapLogger, cfg.Upload.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS ResumeRefiner API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Use(metrics.FiberMiddleware())

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
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Analysis form
	app.Get("/", web.Handler())

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

// newModelClient selects the provider implementation configured with
// AI_PROVIDER. Config validation has already checked the provider name
// and its API key.
func newModelClient(ctx context.Context, cfg *config.Config) (services.ModelClient, error) {
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		return services.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
	default:
		return services.NewGeminiClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
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
