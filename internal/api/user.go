package api

import (
	"context"
	"fmt"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type ConditionResult struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	DatasetVerified bool   `json:"dataset_verified"`
}

func (c *Client) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := c.get(ctx, "/user/"+userID, &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, profile model.UserProfile) (*model.UserProfile, error) {
	var updated model.UserProfile
	if err := c.put(ctx, "/user/"+userID, profile, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

func (c *Client) AddHealthCondition(ctx context.Context, userID, condition string) (*ConditionResult, error) {
	body := map[string]string{"condition": condition}
	var res ConditionResult
	if err := c.post(ctx, "/user/"+userID+"/health_condition", body, &res); err != nil {
		return nil, fmt.Errorf("add health condition: %w", err)
	}
	return &res, nil
}

func (c *Client) AddMedication(ctx context.Context, userID, medication string) (*ConditionResult, error) {
	body := map[string]string{"medication": medication}
	var res ConditionResult
	if err := c.post(ctx, "/user/"+userID+"/medication", body, &res); err != nil {
		return nil, fmt.Errorf("add medication: %w", err)
	}
	return &res, nil
}
