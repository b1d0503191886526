package service

import (
	"context"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
)

func (a *App) HealthInsights(ctx context.Context, userID, period string) ([]model.HealthInsightPoint, error) {
	key := query.NewKey(query.DomainAnalytics, "health", userID, period)
	return query.Get(ctx, a.Cache, key, query.StaleAnalytics, func(ctx context.Context) ([]model.HealthInsightPoint, error) {
		return a.API.HealthInsights(ctx, userID, period)
	})
}

func (a *App) TasteInsights(ctx context.Context, userID string) ([]model.TasteDataPoint, error) {
	key := query.NewKey(query.DomainAnalytics, "taste", userID)
	return query.Get(ctx, a.Cache, key, query.StaleAnalytics, func(ctx context.Context) ([]model.TasteDataPoint, error) {
		return a.API.TasteInsights(ctx, userID)
	})
}

func (a *App) VarietyInsights(ctx context.Context, userID string) ([]model.VarietyDataPoint, error) {
	key := query.NewKey(query.DomainAnalytics, "variety", userID)
	return query.Get(ctx, a.Cache, key, query.StaleAnalytics, func(ctx context.Context) ([]model.VarietyDataPoint, error) {
		return a.API.VarietyInsights(ctx, userID)
	})
}

// PredictHealth is a computation request, not a cacheable read: every
// call goes to the backend.
func (a *App) PredictHealth(ctx context.Context, userID string, forecastDays int) (*model.HealthPrediction, error) {
	return a.API.PredictHealth(ctx, userID, forecastDays)
}

func (a *App) SustainabilityData(ctx context.Context, userID, period string) (*model.SustainabilityData, error) {
	key := query.NewKey(query.DomainSustainability, userID, period)
	return query.Get(ctx, a.Cache, key, query.StaleSustainability, func(ctx context.Context) (*model.SustainabilityData, error) {
		return a.API.SustainabilityData(ctx, userID, period)
	})
}

func (a *App) CarbonFootprint(ctx context.Context, userID string) (*model.CarbonBreakdown, error) {
	key := query.NewKey(query.DomainSustainability, "carbon", userID)
	return query.Get(ctx, a.Cache, key, query.StaleSustainability, func(ctx context.Context) (*model.CarbonBreakdown, error) {
		return a.API.CarbonFootprint(ctx, userID)
	})
}
