package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Ai         AIConfig
	Generation GenerationConfig
	Keys       APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "gemini"
	LLMModel      string // e.g. "llama3", "gemini-2.0-flash"
	OllamaBaseURL string
}

// GenerationConfig tunes the streaming pipeline.
type GenerationConfig struct {
	Concurrency        int // max module jobs running at once per request
	ThrottleIntervalMs int // min gap between partial frames per module
	SessionTTLMin      int // stream session + replay buffer lifetime
	TimeoutMin         int // server-side deadline for one generate call
	UsageTopic         string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Generation: GenerationConfig{
			Concurrency:        getEnvAsInt("GENERATION_CONCURRENCY", 2),
			ThrottleIntervalMs: getEnvAsInt("GENERATION_THROTTLE_INTERVAL_MS", 250),
			SessionTTLMin:      getEnvAsInt("STREAM_SESSION_TTL_MIN", 30),
			TimeoutMin:         getEnvAsInt("GENERATION_TIMEOUT_MIN", 10),
			UsageTopic:         getEnv("GENERATION_USAGE_TOPIC_NAME", "GENERATION_USAGE"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
