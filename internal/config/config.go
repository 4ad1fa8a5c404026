package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	TMDB   TMDBConfig
}

type ServerConfig struct {
	Env  string
	Port string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TLS      bool
}

type TMDBConfig struct {
	BearerToken  string
	BaseURL      string
	ImageBaseURL string
	IMDBBaseURL  string
	// TrendingTTL bounds how long a fetched trending list counts as fresh.
	// The default repository does not enforce it yet; see
	// repository.TMDBMovieRepository.IsTrendingStale.
	TrendingTTL time.Duration
}

// DefaultTrendingTTL is how long the trending list is considered fresh when
// no override is configured.
const DefaultTrendingTTL = 10 * time.Minute

// Load reads environment variables and returns a Config struct
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Env:  getEnv("APP_ENV", "local"),
			Port: getEnv("PORT", "4000"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			TLS:      getEnv("REDIS_TLS", "false") == "true",
		},
		TMDB: TMDBConfig{
			BearerToken:  getEnv("TMDB_BEARER_TOKEN", ""),
			BaseURL:      getEnv("TMDB_URL", "https://api.themoviedb.org/3"),
			ImageBaseURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500"),
			IMDBBaseURL:  getEnv("IMDB_URL", "https://www.imdb.com/title/"),
			TrendingTTL:  getEnvDuration("TMDB_TRENDING_TTL", DefaultTrendingTTL),
		},
	}

	// Validate required fields
	if cfg.TMDB.BearerToken == "" {
		return nil, fmt.Errorf("TMDB_BEARER_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// RedisAddr returns the Redis address in host:port format
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
