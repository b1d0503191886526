package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

type PurchaseItem struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

type PurchaseResult struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	TotalItemsTracked int    `json:"total_items_tracked"`
}

type ConsumptionResult struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	CurrentStock    float64 `json:"current_stock"`
	ConsumptionRate float64 `json:"consumption_rate"`
}

// ShoppingList returns the predicted shopping list covering the next
// daysAhead days (default 7).
func (c *Client) ShoppingList(ctx context.Context, userID string, daysAhead int) (*model.ShoppingList, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	params := url.Values{}
	params.Set("days_ahead", strconv.Itoa(daysAhead))

	var list model.ShoppingList
	if err := c.get(ctx, "/grocery/shopping_list/"+userID+queryString(params), &list); err != nil {
		return nil, fmt.Errorf("shopping list: %w", err)
	}
	return &list, nil
}

func (c *Client) LogPurchase(ctx context.Context, userID string, items []PurchaseItem) (*PurchaseResult, error) {
	body := map[string]any{"user_id": userID, "items": items}
	var res PurchaseResult
	if err := c.post(ctx, "/grocery/purchase", body, &res); err != nil {
		return nil, fmt.Errorf("log purchase: %w", err)
	}
	return &res, nil
}

func (c *Client) LogConsumption(ctx context.Context, userID, item string, quantity float64) (*ConsumptionResult, error) {
	body := map[string]any{"user_id": userID, "item": item, "quantity": quantity}
	var res ConsumptionResult
	if err := c.post(ctx, "/grocery/consume", body, &res); err != nil {
		return nil, fmt.Errorf("log consumption: %w", err)
	}
	return &res, nil
}

func (c *Client) PredictNextPurchase(ctx context.Context, userID, item string) (*model.GroceryPrediction, error) {
	var pred model.GroceryPrediction
	if err := c.get(ctx, "/grocery/predict/"+userID+"/"+url.PathEscape(item), &pred); err != nil {
		return nil, fmt.Errorf("predict next purchase of %s: %w", item, err)
	}
	return &pred, nil
}
