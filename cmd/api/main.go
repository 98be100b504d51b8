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

	"github.com/krinol/resume-analyzer/internal/config"
	"github.com/krinol/resume-analyzer/internal/handlers"
	"github.com/krinol/resume-analyzer/internal/llm"
	applogger "github.com/krinol/resume-analyzer/internal/logger"
	"github.com/krinol/resume-analyzer/internal/middleware"
	"github.com/krinol/resume-analyzer/internal/repositories"
	"github.com/krinol/resume-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := applogger.New(cfg.Server.LogJSON, cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected")

	resumeRepo := repositories.NewResumeRepository(db)
	userRepo := repositories.NewUserRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	ctx := context.Background()

	modelClient, err := llm.New(ctx, &cfg.LLM)
	if err != nil {
		zlog.Fatal("failed to initialize model client", zap.Error(err))
	}
	zlog.Info("model client initialized", zap.String("provider", cfg.LLM.Provider))

	ruleData := services.LoadRuleData(cfg.Rules.Path, zlog)

	modelOpts := llm.Options{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}
	textExtractor := services.NewPDFExtractor()
	fieldExtractor := services.NewFieldExtractor(modelClient, modelOpts, zlog)
	scorer := services.NewScorer(modelClient, ruleData, modelOpts, zlog)

	pipeline := services.NewPipeline(resumeRepo, textExtractor, fieldExtractor, scorer, zlog)

	worker := services.NewWorker(pipeline, cfg.Worker.Concurrency, cfg.Worker.QueueSize, zlog)
	worker.Start(ctx)

	authHandler := handlers.NewAuthHandler(userRepo, &cfg.Auth, zlog)
	uploadHandler := handlers.NewUploadHandler(resumeRepo, storageService, worker, cfg.Storage.MaxFileSize, zlog)
	resumeHandler := handlers.NewResumeHandler(resumeRepo, storageService, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

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

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.HandleRegister)
	auth.Post("/login", authHandler.HandleLogin)

	resumes := api.Group("/resumes", middleware.RequireAuth(cfg.Auth.JWTSecret))
	resumes.Post("/upload", uploadHandler.HandleUpload)
	resumes.Get("/", resumeHandler.HandleList)
	resumes.Get("/:id", resumeHandler.HandleGet)
	resumes.Delete("/:id", resumeHandler.HandleDelete)

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
