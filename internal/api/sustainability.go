package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

func (c *Client) SustainabilityData(ctx context.Context, userID, period string) (*model.SustainabilityData, error) {
	if period == "" {
		period = "monthly"
	}
	params := url.Values{}
	params.Set("period", period)

	var data model.SustainabilityData
	if err := c.get(ctx, "/sustainability/"+userID+queryString(params), &data); err != nil {
		return nil, fmt.Errorf("sustainability data: %w", err)
	}
	return &data, nil
}

func (c *Client) CarbonFootprint(ctx context.Context, userID string) (*model.CarbonBreakdown, error) {
	var breakdown model.CarbonBreakdown
	if err := c.get(ctx, "/sustainability/carbon/"+userID, &breakdown); err != nil {
		return nil, fmt.Errorf("carbon footprint: %w", err)
	}
	return &breakdown, nil
}
