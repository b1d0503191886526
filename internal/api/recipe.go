package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

// SearchRecipes runs a text/tag search. Zero limit falls back to the
// backend default of 20.
func (c *Client) SearchRecipes(ctx context.Context, q, tags string, limit int) ([]model.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}
	if tags != "" {
		params.Set("tags", tags)
	}
	params.Set("limit", strconv.Itoa(limit))

	var recipes []model.Recipe
	if err := c.get(ctx, "/recipes/search"+queryString(params), &recipes); err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, nil
}

func (c *Client) RecipeDetails(ctx context.Context, recipeID string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := c.get(ctx, "/recipes/"+url.PathEscape(recipeID), &recipe); err != nil {
		return nil, fmt.Errorf("recipe %s details: %w", recipeID, err)
	}
	return &recipe, nil
}
