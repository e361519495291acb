package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Analysis AnalysisConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogJSON      bool
}

type AIConfig struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	RequestTimeout time.Duration
	MaxLogLength   int
}

type AnalysisConfig struct {
	ResumeFormat string
	PdftoppmPath string
	ImageDPI     int
}

type UploadConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "120s"),
			LogJSON:      getEnvAsBool("LOG_JSON", false),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel:    getEnv("GEMINI_MODEL", ""),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:    getEnv("OPENAI_MODEL", ""),
			RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", "90s"),
			MaxLogLength:   getEnvAsInt("AI_MAX_LOG_LENGTH", 200),
		},
		Analysis: AnalysisConfig{
			ResumeFormat: getEnv("RESUME_FORMAT", string(models.FormatText)),
			PdftoppmPath: getEnv("PDFTOPPM_PATH", "pdftoppm"),
			ImageDPI:     getEnvAsInt("IMAGE_DPI", 150),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate checks everything that must be correct before the analysis
// pipeline may start. A missing API key for the selected provider is
// fatal here, before any request is accepted.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini:
		if strings.TrimSpace(c.AI.GeminiAPIKey) == "" {
			return models.NewConfigurationError("GEMINI_API_KEY", "api key is required")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.AI.OpenAIAPIKey) == "" {
			return models.NewConfigurationError("OPENAI_API_KEY", "api key is required")
		}
	default:
		return models.NewConfigurationError("AI_PROVIDER",
			fmt.Sprintf("unknown provider %q (expected %q or %q)", c.AI.Provider, ProviderGemini, ProviderOpenAI))
	}

	if _, err := models.ParseResumeFormat(c.Analysis.ResumeFormat); err != nil {
		return models.NewConfigurationError("RESUME_FORMAT", err.Error())
	}

	if c.Upload.MaxFileSize <= 0 {
		return models.NewConfigurationError("MAX_FILE_SIZE", "must be a positive number of bytes")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
