// README: Config loader with env defaults for HTTP, Redis, geocoding, and AI settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type GeocodeConfig struct {
	BaseURL        string
	UserAgent      string
	AcceptLanguage string
	CountryCode    string
	CountryName    string
	Locality       string
	Limit          int
	Debounce       time.Duration
	CacheTTL       time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		Addr string
	}
	Geocode GeocodeConfig
	AI      struct {
		GeminiKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ZOTRA_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = envOrDefault("ZOTRA_REDIS_ADDR", "localhost:6379")
	cfg.Geocode.BaseURL = envOrDefault("ZOTRA_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geocode.UserAgent = envOrDefault("ZOTRA_USER_AGENT", "ZotraQuartiersApp/1.0")
	cfg.Geocode.AcceptLanguage = envOrDefault("ZOTRA_ACCEPT_LANGUAGE", "fr-FR,fr;q=0.9,mg;q=0.8,en;q=0.7")
	cfg.Geocode.CountryCode = envOrDefault("ZOTRA_COUNTRY_CODE", "mg")
	cfg.Geocode.CountryName = envOrDefault("ZOTRA_COUNTRY_NAME", "Madagascar")
	cfg.Geocode.Locality = envOrDefault("ZOTRA_LOCALITY", "")
	cfg.Geocode.Limit = envOrDefaultInt("ZOTRA_SEARCH_LIMIT", 15)
	cfg.Geocode.Debounce = time.Duration(envOrDefaultInt("ZOTRA_DEBOUNCE_MS", 400)) * time.Millisecond
	cfg.Geocode.CacheTTL = time.Duration(envOrDefaultInt("ZOTRA_CACHE_TTL_MIN", 15)) * time.Minute
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
