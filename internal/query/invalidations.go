package query

import "time"

// Cache key domains. Keys are built as domain/resource/params so that a
// domain prefix invalidates every resource under it.
const (
	DomainUser           = "user"
	DomainMeals          = "meals"
	DomainRecipes        = "recipes"
	DomainGrocery        = "grocery"
	DomainGamification   = "gamification"
	DomainSustainability = "sustainability"
	DomainAnalytics      = "analytics"
	DomainModels         = "models"
)

// Staleness windows per domain, matching how often each kind of data
// moves server-side.
const (
	StaleUser           = 5 * time.Minute
	StaleAnalytics      = 2 * time.Minute
	StaleRecipeSearch   = 5 * time.Minute
	StaleRecipeDetails  = 10 * time.Minute
	StaleGrocery        = 5 * time.Minute
	StaleGamification   = 2 * time.Minute
	StaleImpact         = 5 * time.Minute
	StaleSustainability = 5 * time.Minute
	StaleModelStats     = 1 * time.Minute
)

// The mutation → affected-prefix table. Each entry answers "which cached
// reads can this write make stale". Logging a purchase or consumption
// shifts future grocery predictions, so the whole grocery domain goes;
// profile edits touch only that user's key; a logged meal moves
// achievements, rank, and impact together.
func InvalidatesProfileMutation(userID string) []Key {
	return []Key{NewKey(DomainUser, userID)}
}

func InvalidatesGroceryMutation() []Key {
	return []Key{Key(DomainGrocery)}
}

func InvalidatesMealImpact() []Key {
	return []Key{Key(DomainGamification)}
}
