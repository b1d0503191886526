package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

// OnboardingForm is the raw intake shape: everything arrives as text
// and is coerced exactly once, here, before it reaches the API.
type OnboardingForm struct {
	Name                string
	Age                 string
	WeightKg            string
	HeightCm            string
	Gender              string
	ActivityLevel       string
	Goal                string
	LikedIngredients    string
	DislikedIngredients string
	DietaryRestrictions string
	HealthConditions    string
	Medications         string
}

// CoerceProfile turns form text into a typed profile: numbers parsed,
// comma-separated lists split and trimmed. Presence and type are the
// only client-side checks; the backend validates the rest.
func CoerceProfile(form OnboardingForm) (model.UserProfile, error) {
	var profile model.UserProfile
	profile.Name = strings.TrimSpace(form.Name)

	age, err := strconv.Atoi(strings.TrimSpace(form.Age))
	if err != nil {
		return profile, fmt.Errorf("invalid age %q", form.Age)
	}
	profile.Age = age

	weight, err := strconv.ParseFloat(strings.TrimSpace(form.WeightKg), 64)
	if err != nil {
		return profile, fmt.Errorf("invalid weight %q", form.WeightKg)
	}
	profile.WeightKg = weight

	height, err := strconv.ParseFloat(strings.TrimSpace(form.HeightCm), 64)
	if err != nil {
		return profile, fmt.Errorf("invalid height %q", form.HeightCm)
	}
	profile.HeightCm = height

	profile.Gender = strings.TrimSpace(form.Gender)
	if profile.Gender == "" {
		return profile, fmt.Errorf("gender is required")
	}

	activity, err := strconv.ParseFloat(strings.TrimSpace(form.ActivityLevel), 64)
	if err != nil {
		return profile, fmt.Errorf("invalid activity level %q", form.ActivityLevel)
	}
	profile.ActivityLevel = activity

	profile.Goal = strings.TrimSpace(form.Goal)
	if profile.Goal == "" {
		return profile, fmt.Errorf("goal is required")
	}

	profile.LikedIngredients = splitCSV(form.LikedIngredients)
	profile.DislikedIngredients = splitCSV(form.DislikedIngredients)
	profile.DietaryRestrictions = splitCSV(form.DietaryRestrictions)
	profile.HealthConditions = splitCSV(form.HealthConditions)
	profile.Medications = splitCSV(form.Medications)
	return profile, nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FetchProfile reads the profile through the query cache and lands it
// in the user store.
func (a *App) FetchProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	a.Users.Dispatch(store.SetUserLoading{Loading: true})
	key := query.NewKey(query.DomainUser, userID)
	profile, err := query.Get(ctx, a.Cache, key, query.StaleUser, func(ctx context.Context) (*model.UserProfile, error) {
		return a.API.GetProfile(ctx, userID)
	})
	if err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return nil, err
	}
	a.Users.Dispatch(store.SetProfile{Profile: profile})
	return profile, nil
}

// UpdateProfile pushes the profile to the backend when a user id
// exists, otherwise applies the edit locally only (pre-signup flow).
// The server-confirmed profile, not the submitted one, lands in the
// store.
func (a *App) UpdateProfile(ctx context.Context, profile model.UserProfile) error {
	state := a.Users.State()
	if state.User == nil || state.User.ID == "" {
		a.Users.Dispatch(store.SetProfile{Profile: &profile})
		return nil
	}

	userID := state.User.ID
	a.Users.Dispatch(store.SetUserLoading{Loading: true})
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*model.UserProfile, error) {
		return a.API.UpdateProfile(ctx, userID, profile)
	}, query.InvalidatesProfileMutation(userID)...)

	updated, err := mut.Do(ctx)
	if err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return err
	}
	a.Users.Dispatch(store.SetProfile{Profile: updated})
	return nil
}

// AddHealthCondition registers a condition server-side, then reflects
// it in the local profile list.
func (a *App) AddHealthCondition(ctx context.Context, userID, condition string) (*model.UserProfile, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (any, error) {
		return a.API.AddHealthCondition(ctx, userID, condition)
	}, query.InvalidatesProfileMutation(userID)...)
	if _, err := mut.Do(ctx); err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return nil, err
	}

	state := a.Users.State()
	if state.Profile != nil {
		conditions := append(append([]string(nil), state.Profile.HealthConditions...), condition)
		a.Users.Dispatch(store.UpdateProfile{Patch: store.ProfilePatch{HealthConditions: conditions}})
	}
	return a.Users.State().Profile, nil
}

// AddMedication mirrors AddHealthCondition for medications.
func (a *App) AddMedication(ctx context.Context, userID, medication string) (*model.UserProfile, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (any, error) {
		return a.API.AddMedication(ctx, userID, medication)
	}, query.InvalidatesProfileMutation(userID)...)
	if _, err := mut.Do(ctx); err != nil {
		a.Users.Dispatch(store.SetUserError{Message: err.Error()})
		return nil, err
	}

	state := a.Users.State()
	if state.Profile != nil {
		meds := append(append([]string(nil), state.Profile.Medications...), medication)
		a.Users.Dispatch(store.UpdateProfile{Patch: store.ProfilePatch{Medications: meds}})
	}
	return a.Users.State().Profile, nil
}
