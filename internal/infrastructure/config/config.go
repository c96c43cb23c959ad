package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration, read from the environment.
// Connection strings and secrets are configuration-injected only; no
// credential is ever committed as a literal.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects the player store: "file" or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=file"`
	// PlayersFile is the seed snapshot, and the durable store when
	// StoreBackend is "file".
	PlayersFile string `env:"PLAYERS_FILE, default=players.json"`

	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=player_catalog"`
}

type RedisConfig struct {
	// Addr empty means sessions are kept in process memory.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
