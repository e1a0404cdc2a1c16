package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel    = "gemini-3-pro-image-preview"
	DefaultPort     = 5000
	DefaultLocation = "us-central1"
)

// Config is everything the server needs; it is built once in main and
// passed down explicitly.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string

	UseVertex bool
	ProjectID string
	Location  string

	Port       int
	BaseDir    string
	AssetsDir  string
	CatalogDir string
	UploadsDir string
	OutputDir  string

	MaxUploadBytes  int64
	UpstreamTimeout time.Duration

	LogLevel slog.Level
}

// Load reads .env from the working directory (if present) without
// overriding variables already set, then builds Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	baseDir, err := filepath.Abs(getEnv("VIRTUWEAR_BASE_DIR", "."))
	if err != nil {
		return Config{}, fmt.Errorf("invalid VIRTUWEAR_BASE_DIR: %w", err)
	}
	assetsDir := filepath.Join(baseDir, "assets")

	cfg := Config{
		GeminiAPIKey:    strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		UseVertex:       getEnvBool("GOOGLE_GENAI_USE_VERTEXAI", false),
		ProjectID:       getEnv("PROJECT_ID", getEnv("GOOGLE_CLOUD_PROJECT", "")),
		Location:        getEnv("LOCATION", DefaultLocation),
		Port:            getEnvInt("VIRTUWEAR_PORT", DefaultPort),
		BaseDir:         baseDir,
		AssetsDir:       assetsDir,
		CatalogDir:      getEnv("VIRTUWEAR_CATALOG_DIR", filepath.Join(assetsDir, "img_out")),
		UploadsDir:      filepath.Join(baseDir, "uploads"),
		OutputDir:       filepath.Join(baseDir, "output"),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 0)) * time.Second,
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	// An explicitly empty GEMINI_MODEL is a mistake, not a request for the default.
	if model, ok := os.LookupEnv("GEMINI_MODEL"); ok {
		cfg.GeminiModel = strings.TrimSpace(model)
	} else {
		cfg.GeminiModel = DefaultModel
	}

	switch {
	case cfg.GeminiModel == "":
		return Config{}, errors.New("GEMINI_MODEL is empty. Set GEMINI_MODEL in your .env (for example: gemini-2.5-flash-image)")
	case cfg.UseVertex && cfg.ProjectID == "":
		return Config{}, errors.New("PROJECT_ID is required when GOOGLE_GENAI_USE_VERTEXAI is set")
	case !cfg.UseVertex && cfg.GeminiAPIKey == "":
		return Config{}, errors.New("GEMINI_API_KEY is not set. Open .env and set GEMINI_API_KEY=your_real_key_here")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = DefaultPort
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.UpstreamTimeout < 0 {
		cfg.UpstreamTimeout = 0
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
