package api

import (
	"context"
	"fmt"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

// GeneratePlan asks the backend for a fresh multi-day plan built around
// the given profile.
func (c *Client) GeneratePlan(ctx context.Context, profile model.UserProfile) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := c.post(ctx, "/meals/generate", profile, &plan); err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return &plan, nil
}

// GetMealPlan fetches the user's current plan.
func (c *Client) GetMealPlan(ctx context.Context, userID string) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := c.get(ctx, "/meals/plan/"+userID, &plan); err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return &plan, nil
}

// RegenerateDay rebuilds a single day of the current plan in place.
func (c *Client) RegenerateDay(ctx context.Context, userID string, dayIndex int) (*model.DailyPlan, error) {
	body := map[string]any{"user_id": userID, "day_index": dayIndex}
	var day model.DailyPlan
	if err := c.post(ctx, "/meals/regenerate_day", body, &day); err != nil {
		return nil, fmt.Errorf("regenerate day %d: %w", dayIndex, err)
	}
	return &day, nil
}

// SwapMeal replaces one slot of one day with a new recipe.
func (c *Client) SwapMeal(ctx context.Context, userID string, dayIndex int, mealSlot string) (*model.Recipe, error) {
	body := map[string]any{"user_id": userID, "day_index": dayIndex, "meal_slot": mealSlot}
	var recipe model.Recipe
	if err := c.post(ctx, "/meals/swap_meal", body, &recipe); err != nil {
		return nil, fmt.Errorf("swap meal %s of day %d: %w", mealSlot, dayIndex, err)
	}
	return &recipe, nil
}
