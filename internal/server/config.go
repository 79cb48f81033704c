package server

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/cascadevis/cascade/pkg/cache"
	"github.com/cascadevis/cascade/pkg/errors"
)

// Config holds server settings, read from the environment.
type Config struct {
	Addr string `env:"CASCADE_ADDR" env-default:":8080"`

	// CacheBackend selects the artifact cache: file, redis, mongo, or none.
	CacheBackend string `env:"CASCADE_CACHE" env-default:"file"`
	CacheDir     string `env:"CASCADE_CACHE_DIR" env-default:""`
	RedisAddr    string `env:"CASCADE_REDIS_ADDR" env-default:"localhost:6379"`
	MongoURI     string `env:"CASCADE_MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB      string `env:"CASCADE_MONGO_DB" env-default:"cascade"`

	MetricsEnabled bool `env:"CASCADE_METRICS_ENABLED" env-default:"true"`
}

// LoadConfig reads server settings from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read environment")
	}
	return &cfg, nil
}

// OpenCache opens the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.CacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "file", "":
		dir := c.CacheDir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeCache, err, "failed to resolve cache directory")
			}
			dir = filepath.Join(base, "cascade")
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, c.RedisAddr)
	case "mongo":
		return cache.NewMongoCache(ctx, c.MongoURI, c.MongoDB)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend: %s (must be file, redis, mongo, or none)", c.CacheBackend)
	}
}
