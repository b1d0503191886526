package api

import (
	"context"
	"fmt"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type SignupInput struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Age           int     `json:"age"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Gender        string  `json:"gender"`
	Goal          string  `json:"goal"`
	ActivityLevel float64 `json:"activity_level"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session model.Session
	if err := c.post(ctx, "/auth/login", body, &session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &session, nil
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (*model.Session, error) {
	var session model.Session
	if err := c.post(ctx, "/auth/signup", in, &session); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &session, nil
}
