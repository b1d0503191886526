package service

import (
	"context"
	"time"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
)

// searchDebounce is the settle time for text-driven recipe search.
const searchDebounce = 300 * time.Millisecond

// SearchRecipes runs a cached recipe search. Every distinct
// query/tags/limit combination is its own cache key.
func (a *App) SearchRecipes(ctx context.Context, q, tags string, limit int) ([]model.Recipe, error) {
	key := query.NewKey(query.DomainRecipes, "search", q, tags, limit)
	return query.Get(ctx, a.Cache, key, query.StaleRecipeSearch, func(ctx context.Context) ([]model.Recipe, error) {
		return a.API.SearchRecipes(ctx, q, tags, limit)
	})
}

// RecipeDetails reads one recipe through the cache; recipes are
// immutable once fetched so the window is generous.
func (a *App) RecipeDetails(ctx context.Context, recipeID string) (*model.Recipe, error) {
	key := query.NewKey(query.DomainRecipes, recipeID)
	return query.Get(ctx, a.Cache, key, query.StaleRecipeDetails, func(ctx context.Context) (*model.Recipe, error) {
		return a.API.RecipeDetails(ctx, recipeID)
	})
}

// RecipeSearcher debounces successive search inputs: only the last
// input within the settle window reaches the network. Results and
// errors arrive on the callback; a superseded input never fires.
type RecipeSearcher struct {
	app      *App
	debounce *query.Debouncer
	onResult func([]model.Recipe, error)
}

func (a *App) NewRecipeSearcher(onResult func([]model.Recipe, error)) *RecipeSearcher {
	return &RecipeSearcher{
		app:      a,
		debounce: query.NewDebouncer(searchDebounce),
		onResult: onResult,
	}
}

// Input feeds the next text input, cancelling any pending search.
func (s *RecipeSearcher) Input(ctx context.Context, q, tags string, limit int) {
	s.debounce.Do(func() {
		s.onResult(s.app.SearchRecipes(ctx, q, tags, limit))
	})
}

// Stop cancels any pending search without firing the callback.
func (s *RecipeSearcher) Stop() { s.debounce.Stop() }
