package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	S3      S3Config
	Vision  VisionConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type StorageConfig struct {
	// UseS3 selects the remote object store backend; local disk otherwise.
	UseS3         bool
	UploadDir     string
	MaxUploadSize int64
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type VisionConfig struct {
	// Provider is "openai" or "ollama".
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	OllamaURL     string
	OllamaModel   string
}

func Load() (*Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("USE_SERVER_STORAGE", false)
	viper.SetDefault("APP_UPLOAD_DIR", "./uploads")
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 15*1024*1024) // 15MB
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET_NAME", "coffee-readings")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("VISION_PROVIDER", "openai")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.2-vision")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Storage: StorageConfig{
			UseS3:         viper.GetBool("USE_SERVER_STORAGE"),
			UploadDir:     viper.GetString("APP_UPLOAD_DIR"),
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
		},
		S3: S3Config{
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			BucketName:      viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
		},
		Vision: VisionConfig{
			Provider:      viper.GetString("VISION_PROVIDER"),
			OpenAIAPIKey:  viper.GetString("OPENAI_API_KEY"),
			OpenAIModel:   viper.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: viper.GetString("OPENAI_BASE_URL"),
			OllamaURL:     viper.GetString("OLLAMA_URL"),
			OllamaModel:   viper.GetString("OLLAMA_MODEL"),
		},
	}

	if !cfg.Storage.UseS3 {
		if err := os.MkdirAll(cfg.Storage.UploadDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Storage.UploadDir, err)
		}
	}

	return cfg, nil
}
