package store

import (
	"github.com/rs/zerolog"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type UserState struct {
	User    *model.User
	Profile *model.UserProfile
	Loading bool
	Err     string
}

type UserAction interface{ isUserAction() }

type SetUser struct{ User *model.User }

type SetProfile struct{ Profile *model.UserProfile }

// ProfilePatch is a partial profile update. Nil fields are left alone;
// set fields replace their targets. This is the one place missing-field
// semantics are resolved for the profile entity.
type ProfilePatch struct {
	Name                *string
	Age                 *int
	WeightKg            *float64
	HeightCm            *float64
	Gender              *string
	ActivityLevel       *float64
	Goal                *string
	LikedIngredients    []string
	DislikedIngredients []string
	DietaryRestrictions []string
	HealthConditions    []string
	Medications         []string
}

type UpdateProfile struct{ Patch ProfilePatch }

type SetUserLoading struct{ Loading bool }

type SetUserError struct{ Message string }

type ClearUserError struct{}

func (SetUser) isUserAction()        {}
func (SetProfile) isUserAction()     {}
func (UpdateProfile) isUserAction()  {}
func (SetUserLoading) isUserAction() {}
func (SetUserError) isUserAction()   {}
func (ClearUserError) isUserAction() {}

type UserStore = Store[UserState, UserAction]

func NewUserStore(log zerolog.Logger) *UserStore {
	return New(UserState{}, ReduceUser, log)
}

func ReduceUser(s UserState, action UserAction) (UserState, string) {
	switch a := action.(type) {
	case SetUser:
		s.User = a.User
		s.Loading = false
		return s, ""

	case SetProfile:
		s.Profile = a.Profile
		s.Loading = false
		return s, ""

	case UpdateProfile:
		if s.Profile == nil {
			return s, "update profile: no profile loaded"
		}
		profile := *s.Profile
		p := a.Patch
		if p.Name != nil {
			profile.Name = *p.Name
		}
		if p.Age != nil {
			profile.Age = *p.Age
		}
		if p.WeightKg != nil {
			profile.WeightKg = *p.WeightKg
		}
		if p.HeightCm != nil {
			profile.HeightCm = *p.HeightCm
		}
		if p.Gender != nil {
			profile.Gender = *p.Gender
		}
		if p.ActivityLevel != nil {
			profile.ActivityLevel = *p.ActivityLevel
		}
		if p.Goal != nil {
			profile.Goal = *p.Goal
		}
		if p.LikedIngredients != nil {
			profile.LikedIngredients = p.LikedIngredients
		}
		if p.DislikedIngredients != nil {
			profile.DislikedIngredients = p.DislikedIngredients
		}
		if p.DietaryRestrictions != nil {
			profile.DietaryRestrictions = p.DietaryRestrictions
		}
		if p.HealthConditions != nil {
			profile.HealthConditions = p.HealthConditions
		}
		if p.Medications != nil {
			profile.Medications = p.Medications
		}
		s.Profile = &profile
		s.Loading = false
		return s, ""

	case SetUserLoading:
		s.Loading = a.Loading
		return s, ""

	case SetUserError:
		s.Err = a.Message
		s.Loading = false
		return s, ""

	case ClearUserError:
		s.Err = ""
		return s, ""
	}
	return s, ""
}
