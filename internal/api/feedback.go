package api

import (
	"context"
	"fmt"
	"net/url"
)

type TasteFeedback struct {
	UserID        string    `json:"user_id"`
	RecipeID      string    `json:"recipe_id"`
	Rating        float64   `json:"rating"`
	UserGenome    []float64 `json:"user_genome"`
	RecipeProfile []float64 `json:"recipe_profile"`
}

type HealthOutcome struct {
	UserID            string           `json:"user_id"`
	ActualWeight      float64          `json:"actual_weight"`
	ActualHbA1c       *float64         `json:"actual_hba1c,omitempty"`
	ActualCholesterol *float64         `json:"actual_cholesterol,omitempty"`
	MealHistory       []map[string]any `json:"meal_history"`
}

type MealSelection struct {
	UserID           string    `json:"user_id"`
	State            []float64 `json:"state"`
	SelectedRecipeID int       `json:"selected_recipe_id"`
	Reward           float64   `json:"reward"`
}

type FeedbackResult struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	CurrentBufferSize int    `json:"current_buffer_size,omitempty"`
}

type ModelStats struct {
	Model       string         `json:"model"`
	UpdateCount int            `json:"update_count"`
	BufferSize  int            `json:"buffer_size"`
	Metrics     map[string]any `json:"metrics,omitempty"`
}

func (c *Client) LogTasteFeedback(ctx context.Context, fb TasteFeedback) (*FeedbackResult, error) {
	var res FeedbackResult
	if err := c.post(ctx, "/feedback/taste", fb, &res); err != nil {
		return nil, fmt.Errorf("log taste feedback: %w", err)
	}
	return &res, nil
}

func (c *Client) LogHealthOutcome(ctx context.Context, outcome HealthOutcome) (*FeedbackResult, error) {
	var res FeedbackResult
	if err := c.post(ctx, "/feedback/health", outcome, &res); err != nil {
		return nil, fmt.Errorf("log health outcome: %w", err)
	}
	return &res, nil
}

func (c *Client) LogMealSelection(ctx context.Context, sel MealSelection) (*FeedbackResult, error) {
	var res FeedbackResult
	if err := c.post(ctx, "/feedback/meal_selection", sel, &res); err != nil {
		return nil, fmt.Errorf("log meal selection: %w", err)
	}
	return &res, nil
}

func (c *Client) GetModelStats(ctx context.Context, modelName string) (*ModelStats, error) {
	var stats ModelStats
	if err := c.get(ctx, "/models/stats/"+url.PathEscape(modelName), &stats); err != nil {
		return nil, fmt.Errorf("model stats for %s: %w", modelName, err)
	}
	return &stats, nil
}
