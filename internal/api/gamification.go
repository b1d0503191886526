package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type MealImpactInput struct {
	CarbonFootprint float64  `json:"carbon_footprint"`
	HealthScore     float64  `json:"health_score"`
	VarietyScore    float64  `json:"variety_score"`
	TasteRating     *float64 `json:"taste_rating,omitempty"`
}

type MealImpactResult struct {
	Status          string              `json:"status"`
	NewAchievements []model.Achievement `json:"new_achievements"`
	TotalPoints     int                 `json:"total_points"`
}

func (c *Client) Achievements(ctx context.Context, userID string) (*model.AchievementList, error) {
	var list model.AchievementList
	if err := c.get(ctx, "/gamification/achievements/"+userID, &list); err != nil {
		return nil, fmt.Errorf("achievements: %w", err)
	}
	return &list, nil
}

// Leaderboard fetches the ranked entries for one board/period. Entries
// always replace any previous fetch wholesale; they are never merged.
func (c *Client) Leaderboard(ctx context.Context, boardType, period string, limit int) (*model.Leaderboard, error) {
	if boardType == "" {
		boardType = "carbon_saved"
	}
	if period == "" {
		period = "month"
	}
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{}
	params.Set("leaderboard_type", boardType)
	params.Set("period", period)
	params.Set("limit", strconv.Itoa(limit))

	var board model.Leaderboard
	if err := c.get(ctx, "/gamification/leaderboard"+queryString(params), &board); err != nil {
		return nil, fmt.Errorf("leaderboard %s/%s: %w", boardType, period, err)
	}
	return &board, nil
}

func (c *Client) UserRank(ctx context.Context, userID, boardType string) (*model.UserRank, error) {
	if boardType == "" {
		boardType = "carbon_saved"
	}
	params := url.Values{}
	params.Set("leaderboard_type", boardType)

	var rank model.UserRank
	if err := c.get(ctx, "/gamification/rank/"+userID+queryString(params), &rank); err != nil {
		return nil, fmt.Errorf("user rank: %w", err)
	}
	return &rank, nil
}

func (c *Client) Streak(ctx context.Context, userID string) (*model.StreakInfo, error) {
	var streak model.StreakInfo
	if err := c.get(ctx, "/gamification/streak/"+userID, &streak); err != nil {
		return nil, fmt.Errorf("streak: %w", err)
	}
	return &streak, nil
}

func (c *Client) ImpactSummary(ctx context.Context, userID string) (*model.ImpactSummary, error) {
	var summary model.ImpactSummary
	if err := c.get(ctx, "/gamification/impact_summary/"+userID, &summary); err != nil {
		return nil, fmt.Errorf("impact summary: %w", err)
	}
	return &summary, nil
}

func (c *Client) LogMealImpact(ctx context.Context, userID string, in MealImpactInput) (*MealImpactResult, error) {
	body := map[string]any{
		"user_id":          userID,
		"carbon_footprint": in.CarbonFootprint,
		"health_score":     in.HealthScore,
		"variety_score":    in.VarietyScore,
	}
	if in.TasteRating != nil {
		body["taste_rating"] = *in.TasteRating
	}
	var res MealImpactResult
	if err := c.post(ctx, "/gamification/log_meal", body, &res); err != nil {
		return nil, fmt.Errorf("log meal impact: %w", err)
	}
	return &res, nil
}
