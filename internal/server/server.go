package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shubhamjangid510/coffe-cup/internal/config"
	"github.com/shubhamjangid510/coffe-cup/internal/handler"
	"github.com/shubhamjangid510/coffe-cup/internal/repository"
	"github.com/shubhamjangid510/coffe-cup/internal/service"
	"github.com/shubhamjangid510/coffe-cup/internal/vision"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	repo, err := newRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	detector, synthesizer, err := newVisionClients(&cfg.Vision, log)
	if err != nil {
		return nil, err
	}

	readingService := service.NewReadingService(repo, detector, synthesizer, cfg.Storage.MaxUploadSize, log)

	h := handler.NewHandler(readingService, cfg.Storage.MaxUploadSize, log)

	router.GET("/health", h.HealthCheck)
	router.POST("/upload_image/", h.UploadImage)
	router.POST("/analyze_coffee_cup/", h.AnalyzeCoffeeCup)
	router.GET("/readings/:reading_id/images", h.ListReadingImages)

	server := &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
			// Analysis waits on two hosted-model round trips, so the
			// write timeout is much longer than the read timeout.
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   10 * time.Minute,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Bool("s3_storage", cfg.Storage.UseS3),
		zap.String("vision_provider", cfg.Vision.Provider))

	return server, nil
}

func newRepository(cfg *config.Config, log *zap.Logger) (repository.ImageRepository, error) {
	if cfg.Storage.UseS3 {
		repo, err := repository.NewS3Repository(&cfg.S3, cfg.Storage.MaxUploadSize, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 repository: %w", err)
		}
		return repo, nil
	}
	repo, err := repository.NewLocalRepository(cfg.Storage.UploadDir, cfg.Storage.MaxUploadSize, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create local repository: %w", err)
	}
	return repo, nil
}

func newVisionClients(cfg *config.VisionConfig, log *zap.Logger) (vision.SymbolDetector, vision.ReadingSynthesizer, error) {
	switch cfg.Provider {
	case "openai":
		client, err := vision.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, client, nil
	case "ollama":
		client, err := vision.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
