package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa toda la configuración del servicio. Todo viene de env vars
// (con .env opcional para desarrollo).
type Config struct {
	Server struct {
		Port string
	}

	Database struct {
		DSN string // vacío = repos in-memory
	}

	Log struct {
		Level  string
		Format string
	}

	CORS struct {
		Origins []string
	}

	GubUy struct {
		BaseURL string // vacío = modo dev con headers X-Debug-*
		Timeout time.Duration
	}

	DNIC struct {
		BaseURL string // vacío = registro sin verificación DNIC
		APIKey  string
		Timeout time.Duration
	}

	Policy struct {
		DefaultTTL time.Duration // 0 = los permisos sin expires_at no vencen
	}
}

func Load() (Config, error) {
	// El .env es opcional; en producción todo viene del entorno.
	_ = godotenv.Load()

	var cfg Config

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Database.DSN = getEnv("DB_DSN", "")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if origins := getEnv("CORS_ORIGINS", "*"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.Origins = append(cfg.CORS.Origins, o)
			}
		}
	}

	cfg.GubUy.BaseURL = getEnv("GUBUY_BASE_URL", "")
	cfg.GubUy.Timeout = getDuration("GUBUY_TIMEOUT_SECONDS", 5*time.Second)

	cfg.DNIC.BaseURL = getEnv("DNIC_BASE_URL", "")
	cfg.DNIC.APIKey = getEnv("DNIC_API_KEY", "")
	cfg.DNIC.Timeout = getDuration("DNIC_TIMEOUT_SECONDS", 5*time.Second)

	ttlDays, err := getInt("POLICY_DEFAULT_TTL_DAYS", 0)
	if err != nil {
		return Config{}, err
	}
	if ttlDays < 0 {
		return Config{}, fmt.Errorf("POLICY_DEFAULT_TTL_DAYS must be >= 0, got %d", ttlDays)
	}
	cfg.Policy.DefaultTTL = time.Duration(ttlDays) * 24 * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}
