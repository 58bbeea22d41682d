package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Auth      AuthConfig
	Ai        AIConfig
	Speech    SpeechConfig
	Assistant AssistantConfig
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
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTLMinute int
}

type AIConfig struct {
	Provider      string // "gemini" or "ollama"
	GeminiAPIKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
}

type SpeechConfig struct {
	STTBaseURL        string
	TTSBaseURL        string
	TTSVoice          string
	AudioResponsesDir string
	FfmpegPath        string
}

type AssistantConfig struct {
	SilenceThresholdMs int
	SilenceCheckMs     int
	ContextWindowSize  int
	MinConfidenceScore int
	AmbiguityGapScore  int
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
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "TelemedAssist"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			TokenTTLMinute: getEnvAsInt("JWT_TTL_MINUTES", 60*24),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("LLM_MODEL", "llama3"),
		},
		Speech: SpeechConfig{
			STTBaseURL:        getEnv("STT_BASE_URL", "http://localhost:9000"),
			TTSBaseURL:        getEnv("TTS_BASE_URL", "http://localhost:5002"),
			TTSVoice:          getEnv("TTS_VOICE", "fr_FR-siwis-medium"),
			AudioResponsesDir: getEnv("AUDIO_RESPONSES_DIR", "static/audio_responses"),
			FfmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		},
		Assistant: AssistantConfig{
			SilenceThresholdMs: getEnvAsInt("SILENCE_THRESHOLD_MS", 1500),
			SilenceCheckMs:     getEnvAsInt("SILENCE_CHECK_MS", 500),
			ContextWindowSize:  getEnvAsInt("CONTEXT_WINDOW_SIZE", 10),
			MinConfidenceScore: getEnvAsInt("MIN_CONFIDENCE_SCORE", 50),
			AmbiguityGapScore:  getEnvAsInt("AMBIGUITY_GAP_SCORE", 15),
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
