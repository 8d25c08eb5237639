// Package server wires configuration, storage, and the HTTP handler into
// the runnable API service.
package server

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/charkeep/internal/auth/credential"
	"github.com/louisbranch/charkeep/internal/auth/password"
	"github.com/louisbranch/charkeep/internal/auth/session"
	"github.com/louisbranch/charkeep/internal/platform/config"
	"github.com/louisbranch/charkeep/internal/platform/otel"
	"github.com/louisbranch/charkeep/internal/storage/sqlite"
	"github.com/louisbranch/charkeep/internal/web"
)

const serviceName = "charkeep"

// Config holds server command configuration.
type Config struct {
	HTTPAddr   string        `env:"CHARKEEP_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath     string        `env:"CHARKEEP_DB_PATH" envDefault:"charkeep.db"`
	SessionKey string        `env:"CHARKEEP_SESSION_KEY"`
	SessionTTL time.Duration `env:"CHARKEEP_SESSION_TTL" envDefault:"720h"`
}

// ParseConfig loads the server configuration from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the API server and blocks until the context is canceled.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	key := []byte(cfg.SessionKey)
	if len(key) == 0 {
		key, err = session.NewRandomKey()
		if err != nil {
			return err
		}
		log.Printf("CHARKEEP_SESSION_KEY is unset; sessions will not survive a restart")
	}

	handler := web.NewHandler(web.Dependencies{
		Credentials: credential.NewService(store, password.BcryptHasher{Cost: password.DefaultCost}),
		Sessions:    session.NewManager(key, cfg.SessionTTL),
		Characters:  store,
	})

	log.Printf("serving http addr=%s db=%s", cfg.HTTPAddr, cfg.DBPath)
	return web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, handler).Run(ctx)
}
