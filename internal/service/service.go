// Package service composes the api client, the query cache, the domain
// stores, and the local state store into the operations the CLI
// invokes. Stores remain the single source of truth for display; every
// network result lands in a store before anything renders it.
package service

import (
	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/db"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

type App struct {
	API   *api.Client
	Cache *query.Cache
	State *db.StateStore

	Users        *store.UserStore
	Plans        *store.MealPlanStore
	Gamification *store.GamificationStore
	Grocery      *store.GroceryStore

	Log zerolog.Logger
}

// NewApp wires the stores together and hooks the profile mirror: every
// profile transition is written through to local state, and the
// last-known profile is hydrated back in before any network call.
func NewApp(client *api.Client, cache *query.Cache, state *db.StateStore, log zerolog.Logger) *App {
	app := &App{
		API:          client,
		Cache:        cache,
		State:        state,
		Users:        store.NewUserStore(log),
		Plans:        store.NewMealPlanStore(log),
		Gamification: store.NewGamificationStore(log),
		Grocery:      store.NewGroceryStore(log),
		Log:          log,
	}

	app.Users.Subscribe(func(s store.UserState) {
		if s.Profile == nil {
			return
		}
		if err := state.SaveProfile(s.Profile); err != nil {
			log.Warn().Err(err).Msg("mirror profile to local state")
		}
	})

	app.hydrate()
	return app
}

func (a *App) hydrate() {
	if profile, err := a.State.LoadProfile(); err != nil {
		a.Log.Warn().Err(err).Msg("hydrate profile")
	} else if profile != nil {
		a.Users.Dispatch(store.SetProfile{Profile: profile})
	}

	if session, err := a.State.LoadSession(); err != nil {
		a.Log.Warn().Err(err).Msg("hydrate session")
	} else if session != nil {
		user := session.User
		a.Users.Dispatch(store.SetUser{User: &user})
	}
}
