package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/squadbase/player-catalog/internal/api"
	"github.com/squadbase/player-catalog/internal/api/handler"
	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
	"github.com/squadbase/player-catalog/internal/infrastructure/config"
	"github.com/squadbase/player-catalog/internal/infrastructure/db/file"
	"github.com/squadbase/player-catalog/internal/infrastructure/db/memory"
	mongodb "github.com/squadbase/player-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/squadbase/player-catalog/internal/infrastructure/db/redis"
	"github.com/squadbase/player-catalog/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if !cfg.IsDevelopment() {
			log.Fatal().Msg("JWT_SECRET must be set outside development")
		}
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		jwtSecret = "dev-only-secret"
	}

	deps := api.Deps{
		JWTSecret:     jwtSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: !cfg.IsDevelopment(),
		HealthPingers: map[string]handler.Pinger{},
		Logger:        log,
	}

	// --- Player store ---
	switch cfg.StoreBackend {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			// degrade, don't crash: the process stays up serving empty listings
			log.Error().Err(err).Msg("mongo unavailable, catalog degraded")
			deps.Players = unavailableStore{}
			deps.Users = memory.NewUserRepository()
		} else {
			defer func() {
				_ = client.Disconnect(context.Background())
			}()

			players := mongodb.NewPlayerRepository(db)
			users := mongodb.NewUserRepository(db)
			if err := players.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to ensure player indexes")
			}
			if err := users.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to ensure user indexes")
			}

			deps.Players = players
			deps.Users = users
			deps.HealthPingers["mongodb"] = handler.PingerFunc(func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			})
		}
	default:
		deps.Players = file.NewPlayerRepository(cfg.PlayersFile)
		deps.Users = memory.NewUserRepository()
	}

	seedPlayers(ctx, log, cfg.PlayersFile, deps.Players)

	// --- Session store ---
	if cfg.Redis.Addr != "" {
		sessions, err := redisdb.Open(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Error().Err(err).Msg("redis unavailable, falling back to in-memory sessions")
			deps.Sessions = memory.NewSessionStore()
		} else {
			defer sessions.Close()
			deps.Sessions = sessions
			deps.HealthPingers["redis"] = handler.PingerFunc(sessions.Ping)
		}
	} else {
		log.Info().Msg("REDIS_ADDR not set, sessions kept in process memory")
		deps.Sessions = memory.NewSessionStore()
	}

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// seedPlayers imports the snapshot into the store on first start. The import
// only fires when the store holds zero records, so it is safe on every boot.
// A failed seed is logged and the process continues.
func seedPlayers(ctx context.Context, log zerolog.Logger, path string, repo ports.PlayerRepository) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("seed snapshot unreadable, skipping import")
		return
	}

	var players []domain.Player
	if err := json.Unmarshal(data, &players); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("seed snapshot malformed, skipping import")
		return
	}

	inserted, err := repo.SeedIfEmpty(ctx, players)
	if err != nil {
		log.Error().Err(err).Msg("seed import failed")
		return
	}
	if inserted > 0 {
		log.Info().Int("count", inserted).Msg("player snapshot imported")
	} else {
		log.Info().Msg("player data already imported")
	}
}

// unavailableStore is the degraded player store used when the configured
// backend cannot be reached at startup.
type unavailableStore struct{}

func (unavailableStore) LoadAll(context.Context) ([]domain.Player, error) {
	return nil, domain.ErrDataUnavailable
}

func (unavailableStore) FindByID(context.Context, string) (*domain.Player, error) {
	return nil, domain.ErrDataUnavailable
}

func (unavailableStore) Update(context.Context, string, ports.PlayerPatch) (*domain.Player, error) {
	return nil, domain.ErrDataUnavailable
}

func (unavailableStore) SeedIfEmpty(context.Context, []domain.Player) (int, error) {
	return 0, domain.ErrDataUnavailable
}
