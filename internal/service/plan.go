package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

// planFreshness is how long a locally cached plan is shown to a
// returning user before it is considered too old to trust.
const planFreshness = 24 * time.Hour

const planHistoryCap = 10

// LoadCachedPlan hydrates the last generated plan from local state when
// it is younger than the freshness window. Returns true when a plan was
// loaded.
func (a *App) LoadCachedPlan() (bool, error) {
	plan, fetchedAt, err := a.State.LoadPlan()
	if err != nil {
		return false, err
	}
	if plan == nil || time.Since(fetchedAt) >= planFreshness {
		return false, nil
	}
	a.Plans.Dispatch(store.SetPlan{Plan: plan})
	return true, nil
}

// CreatePlan generates a fresh plan for the profile and makes it
// current, records it in history, and persists it locally.
func (a *App) CreatePlan(ctx context.Context, profile model.UserProfile) (*model.MealPlan, error) {
	a.Plans.Dispatch(store.SetPlanLoading{Loading: true})
	plan, err := a.API.GeneratePlan(ctx, profile)
	if err != nil {
		a.Plans.Dispatch(store.SetPlanError{Message: err.Error()})
		return nil, err
	}
	a.Plans.Dispatch(store.SetPlan{Plan: plan})
	a.Plans.Dispatch(store.AddToHistory{Plan: plan})
	a.persistPlan(plan)
	if err := a.State.AppendPlanHistory(plan, planHistoryCap); err != nil {
		a.Log.Warn().Err(err).Msg("persist plan history")
	}
	return plan, nil
}

// FetchPlan pulls the user's current plan from the backend.
func (a *App) FetchPlan(ctx context.Context, userID string) (*model.MealPlan, error) {
	a.Plans.Dispatch(store.SetPlanLoading{Loading: true})
	plan, err := a.API.GetMealPlan(ctx, userID)
	if err != nil {
		a.Plans.Dispatch(store.SetPlanError{Message: err.Error()})
		return nil, err
	}
	a.Plans.Dispatch(store.SetPlan{Plan: plan})
	a.persistPlan(plan)
	return plan, nil
}

// RegenerateDay rebuilds one day server-side and applies it in place;
// no other day is touched.
func (a *App) RegenerateDay(ctx context.Context, userID string, dayIndex int) (*model.DailyPlan, error) {
	a.Plans.Dispatch(store.SetPlanLoading{Loading: true})
	day, err := a.API.RegenerateDay(ctx, userID, dayIndex)
	if err != nil {
		a.Plans.Dispatch(store.SetPlanError{Message: err.Error()})
		return nil, err
	}
	a.Plans.Dispatch(store.UpdateDay{DayIndex: dayIndex, Day: day})
	a.persistPlan(a.Plans.State().CurrentPlan)
	return day, nil
}

// SwapMeal swaps one slot of one day. The store is updated only after
// the server confirms; there is no optimistic write to roll back.
func (a *App) SwapMeal(ctx context.Context, userID string, dayIndex int, mealSlot string) (*model.Recipe, error) {
	a.Plans.Dispatch(store.SetPlanLoading{Loading: true})
	recipe, err := a.API.SwapMeal(ctx, userID, dayIndex, mealSlot)
	if err != nil {
		a.Plans.Dispatch(store.SetPlanError{Message: err.Error()})
		return nil, err
	}
	a.Plans.Dispatch(store.UpdateMeal{DayIndex: dayIndex, MealSlot: mealSlot, Recipe: recipe})
	a.persistPlan(a.Plans.State().CurrentPlan)
	return recipe, nil
}

// PlanHistory lists previously generated plans, newest first.
func (a *App) PlanHistory(limit int) ([]*model.MealPlan, error) {
	plans, err := a.State.ListPlanHistory(limit)
	if err != nil {
		return nil, fmt.Errorf("load plan history: %w", err)
	}
	return plans, nil
}

func (a *App) persistPlan(plan *model.MealPlan) {
	if plan == nil {
		return
	}
	if err := a.State.SavePlan(plan, time.Now()); err != nil {
		a.Log.Warn().Err(err).Msg("persist current plan")
	}
}
