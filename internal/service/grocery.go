package service

import (
	"context"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

// FetchShoppingList reads the predicted list through the query cache.
func (a *App) FetchShoppingList(ctx context.Context, userID string, daysAhead int) (*model.ShoppingList, error) {
	a.Grocery.Dispatch(store.SetGroceryLoading{Loading: true})
	key := query.NewKey(query.DomainGrocery, "shopping_list", userID, daysAhead)
	list, err := query.Get(ctx, a.Cache, key, query.StaleGrocery, func(ctx context.Context) (*model.ShoppingList, error) {
		return a.API.ShoppingList(ctx, userID, daysAhead)
	})
	if err != nil {
		a.Grocery.Dispatch(store.SetGroceryError{Message: err.Error()})
		return nil, err
	}
	a.Grocery.Dispatch(store.SetShoppingList{List: list})
	return list, nil
}

// PredictNextPurchase reads a per-item prediction through the cache.
func (a *App) PredictNextPurchase(ctx context.Context, userID, item string) (*model.GroceryPrediction, error) {
	key := query.NewKey(query.DomainGrocery, "predict", userID, item)
	pred, err := query.Get(ctx, a.Cache, key, query.StaleGrocery, func(ctx context.Context) (*model.GroceryPrediction, error) {
		return a.API.PredictNextPurchase(ctx, userID, item)
	})
	if err != nil {
		a.Grocery.Dispatch(store.SetGroceryError{Message: err.Error()})
		return nil, err
	}
	return pred, nil
}

// RecordPurchase logs a purchase. Consumption and purchase both move
// future predictions, so the whole grocery domain is invalidated and
// the shopping list refetched.
func (a *App) RecordPurchase(ctx context.Context, userID string, items []api.PurchaseItem) (*api.PurchaseResult, error) {
	a.Grocery.Dispatch(store.SetGroceryLoading{Loading: true})
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.PurchaseResult, error) {
		return a.API.LogPurchase(ctx, userID, items)
	}, query.InvalidatesGroceryMutation()...)

	res, err := mut.Do(ctx)
	if err != nil {
		a.Grocery.Dispatch(store.SetGroceryError{Message: err.Error()})
		return nil, err
	}
	if _, err := a.FetchShoppingList(ctx, userID, 0); err != nil {
		a.Log.Warn().Err(err).Msg("refresh shopping list after purchase")
	}
	return res, nil
}

// RecordConsumption logs that an item was used up.
func (a *App) RecordConsumption(ctx context.Context, userID, item string, quantity float64) (*api.ConsumptionResult, error) {
	a.Grocery.Dispatch(store.SetGroceryLoading{Loading: true})
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.ConsumptionResult, error) {
		return a.API.LogConsumption(ctx, userID, item, quantity)
	}, query.InvalidatesGroceryMutation()...)

	res, err := mut.Do(ctx)
	if err != nil {
		a.Grocery.Dispatch(store.SetGroceryError{Message: err.Error()})
		return nil, err
	}
	a.Grocery.Dispatch(store.SetGroceryLoading{Loading: false})
	return res, nil
}
