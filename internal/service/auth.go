package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

// Login authenticates and persists the session so later runs attach
// the bearer token without re-authenticating.
func (a *App) Login(ctx context.Context, email, password string) (*model.Session, error) {
	session, err := a.API.Login(ctx, email, password)
	if err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return nil, err
	}
	a.applySession(session)
	return session, nil
}

// Signup creates an account with placeholder biometrics; onboarding
// replaces them with real values.
func (a *App) Signup(ctx context.Context, name, email, password string) (*model.Session, error) {
	session, err := a.API.Signup(ctx, api.SignupInput{
		Name:          name,
		Email:         email,
		Password:      password,
		Age:           30,
		WeightKg:      70,
		HeightCm:      170,
		Gender:        "other",
		Goal:          "maintenance",
		ActivityLevel: 1.4,
	})
	if err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return nil, err
	}
	if session.User.ID == "" {
		session.User.ID = uuid.NewString()
	}
	a.applySession(session)
	return session, nil
}

// Logout drops the stored session and resets the user store.
func (a *App) Logout() error {
	if err := a.State.ClearSession(); err != nil {
		return err
	}
	a.Users.Dispatch(store.SetUser{User: nil})
	return nil
}

// CurrentSession returns the persisted session, or nil when logged out.
func (a *App) CurrentSession() (*model.Session, error) {
	return a.State.LoadSession()
}

func (a *App) applySession(session *model.Session) {
	if err := a.State.SaveSession(session); err != nil {
		a.Log.Warn().Err(err).Msg("persist session")
	}
	user := session.User
	a.Users.Dispatch(store.SetUser{User: &user})
}
