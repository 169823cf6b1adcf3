package config

import "time"

// DBConfig contains PostgreSQL database configuration for the profile store.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"researchhub"`
	Password string `env:"PASSWORD" envDefault:"researchhub"`
	Name     string `env:"NAME"     envDefault:"researchhub"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for sessions and caches.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// ListCacheTTL is the TTL for cached list payloads (projects, tasks, conversations).
	ListCacheTTL time.Duration `env:"LIST_CACHE_TTL" envDefault:"30m"`
}
