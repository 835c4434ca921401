package config

import (
	"os"
	"strconv"
	"strings"

	"srtm-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	ObjectStoreType     string
	LocalStoreDir       string
	AWSRegion           string
	S3Bucket            string
	S3Prefix            string
	SSEKMSKeyID         string
	DatabaseURL         string
	Env                 string
	CatalogFile         string
	CatalogHistoryLimit int
	ScoringProfile      string
	RateLimitRPS        float64
	RateLimitBurst      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:     normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:         getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:         dbURL,
		Env:                 env,
		CatalogFile:         getEnv("CATALOG_FILE", ""),
		CatalogHistoryLimit: getEnvInt("CATALOG_HISTORY_LIMIT", 10),
		ScoringProfile:      strings.ToLower(getEnv("SCORING_PROFILE", "validated")),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.env_invalid", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.env_invalid", map[string]any{"key": key, "error": err.Error()})
		return def
	}
	return val
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
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
