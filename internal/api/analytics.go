package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

func (c *Client) HealthInsights(ctx context.Context, userID, period string) ([]model.HealthInsightPoint, error) {
	if period == "" {
		period = "30d"
	}
	params := url.Values{}
	params.Set("period", period)

	var points []model.HealthInsightPoint
	if err := c.get(ctx, "/analytics/health/"+userID+queryString(params), &points); err != nil {
		return nil, fmt.Errorf("health insights: %w", err)
	}
	return points, nil
}

func (c *Client) TasteInsights(ctx context.Context, userID string) ([]model.TasteDataPoint, error) {
	var points []model.TasteDataPoint
	if err := c.get(ctx, "/analytics/taste/"+userID, &points); err != nil {
		return nil, fmt.Errorf("taste insights: %w", err)
	}
	return points, nil
}

func (c *Client) VarietyInsights(ctx context.Context, userID string) ([]model.VarietyDataPoint, error) {
	var points []model.VarietyDataPoint
	if err := c.get(ctx, "/analytics/variety/"+userID, &points); err != nil {
		return nil, fmt.Errorf("variety insights: %w", err)
	}
	return points, nil
}

// PredictHealth requests a health-score forecast over forecastDays.
func (c *Client) PredictHealth(ctx context.Context, userID string, forecastDays int) (*model.HealthPrediction, error) {
	if forecastDays <= 0 {
		forecastDays = 30
	}
	body := map[string]any{"user_id": userID, "forecast_days": forecastDays}
	var pred model.HealthPrediction
	if err := c.post(ctx, "/analytics/predict_health", body, &pred); err != nil {
		return nil, fmt.Errorf("predict health: %w", err)
	}
	return &pred, nil
}
