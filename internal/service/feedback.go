package service

import (
	"context"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
)

// Feedback submissions feed the backend's online-learning loop. They
// affect no cached read, so none of them invalidates anything.

func (a *App) LogTasteFeedback(ctx context.Context, fb api.TasteFeedback) (*api.FeedbackResult, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.FeedbackResult, error) {
		return a.API.LogTasteFeedback(ctx, fb)
	})
	return mut.Do(ctx)
}

func (a *App) LogHealthOutcome(ctx context.Context, outcome api.HealthOutcome) (*api.FeedbackResult, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.FeedbackResult, error) {
		return a.API.LogHealthOutcome(ctx, outcome)
	})
	return mut.Do(ctx)
}

func (a *App) LogMealSelection(ctx context.Context, sel api.MealSelection) (*api.FeedbackResult, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.FeedbackResult, error) {
		return a.API.LogMealSelection(ctx, sel)
	})
	return mut.Do(ctx)
}

// ModelStats reads online-learning model metrics; stats move fast, so
// the window is short.
func (a *App) ModelStats(ctx context.Context, modelName string) (*api.ModelStats, error) {
	key := query.NewKey(query.DomainModels, "stats", modelName)
	return query.Get(ctx, a.Cache, key, query.StaleModelStats, func(ctx context.Context) (*api.ModelStats, error) {
		return a.API.GetModelStats(ctx, modelName)
	})
}
