package nutriplan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/app"
	"github.com/nutriflavoros/nutriplan-cli/internal/config"
	"github.com/nutriflavoros/nutriplan-cli/internal/db"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

func resolveDBPath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

// withApp opens the local state database, applies migrations, and wires
// the api client, cache, and stores before handing control to run.
func withApp(run func(*service.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}

	logger := newLogger(cfg.Log.Level)
	state := db.NewStateStore(sqldb)

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
		api.WithTokenSource(func() string {
			session, err := state.LoadSession()
			if err != nil || session == nil {
				return ""
			}
			return session.AccessToken
		}),
	)
	cache := query.NewCache(
		query.WithRetries(cfg.API.Retries),
		query.WithCacheLogger(logger),
	)

	return run(service.NewApp(client, cache, state, logger))
}

// requireUserID returns the signed-in user's id, or an error telling
// the user to log in first.
func requireUserID(a *service.App) (string, error) {
	if u := a.Users.State().User; u != nil && u.ID != "" {
		return u.ID, nil
	}
	return "", fmt.Errorf("not logged in; run: nutriplan auth login")
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}
