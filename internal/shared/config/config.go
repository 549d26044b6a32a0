package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	DataDir       string
	MaxUploadMB   int64
	AnalyzeRPM    float64
	AnalyzeBurst  int

	GeminiAPIKey string
	LLMModel     string
	LLMTimeout   time.Duration

	TesseractPath string
	TesseractLang string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DataDir:         getEnv("DATA_DIR", "./data"),
		MaxUploadMB:     getInt64(getEnv("MAX_UPLOAD_MB", "10"), 10),
		AnalyzeRPM:      getFloat(getEnv("ANALYZE_RPM", "30"), 30),
		AnalyzeBurst:    int(getInt64(getEnv("ANALYZE_BURST", "5"), 5)),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		LLMTimeout:      time.Duration(getInt64(getEnv("LLM_TIMEOUT_SECONDS", "60"), 60)) * time.Second,
		TesseractPath:   getEnv("TESSERACT_PATH", "tesseract"),
		TesseractLang:   getEnv("TESSERACT_LANG", "eng"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt64(raw string, def int64) int64 {
	if parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func getFloat(raw string, def float64) float64 {
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && parsed > 0 {
		return parsed
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
