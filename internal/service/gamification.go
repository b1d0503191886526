package service

import (
	"context"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

func (a *App) FetchAchievements(ctx context.Context, userID string) ([]model.Achievement, error) {
	a.Gamification.Dispatch(store.SetGamificationLoading{Loading: true})
	key := query.NewKey(query.DomainGamification, "achievements", userID)
	list, err := query.Get(ctx, a.Cache, key, query.StaleGamification, func(ctx context.Context) (*model.AchievementList, error) {
		return a.API.Achievements(ctx, userID)
	})
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	a.Gamification.Dispatch(store.SetAchievements{Achievements: list.Achievements})
	return list.Achievements, nil
}

// FetchLeaderboard reads one board. Each type+period+limit combination
// is its own cache key; entries replace the store's board for that type
// wholesale.
func (a *App) FetchLeaderboard(ctx context.Context, boardType, period string, limit int) (*model.Leaderboard, error) {
	a.Gamification.Dispatch(store.SetGamificationLoading{Loading: true})
	key := query.NewKey(query.DomainGamification, "leaderboard", boardType, period, limit)
	board, err := query.Get(ctx, a.Cache, key, query.StaleGamification, func(ctx context.Context) (*model.Leaderboard, error) {
		return a.API.Leaderboard(ctx, boardType, period, limit)
	})
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	a.Gamification.Dispatch(store.SetLeaderboard{Type: board.Type, Entries: board.Entries})
	return board, nil
}

func (a *App) FetchUserRank(ctx context.Context, userID, boardType string) (*model.UserRank, error) {
	key := query.NewKey(query.DomainGamification, "rank", userID, boardType)
	rank, err := query.Get(ctx, a.Cache, key, query.StaleGamification, func(ctx context.Context) (*model.UserRank, error) {
		return a.API.UserRank(ctx, userID, boardType)
	})
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	return rank, nil
}

func (a *App) FetchStreak(ctx context.Context, userID string) (*model.StreakInfo, error) {
	key := query.NewKey(query.DomainGamification, "streak", userID)
	streak, err := query.Get(ctx, a.Cache, key, query.StaleGamification, func(ctx context.Context) (*model.StreakInfo, error) {
		return a.API.Streak(ctx, userID)
	})
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	a.Gamification.Dispatch(store.SetStreak{Streak: streak.StreakDays})
	return streak, nil
}

func (a *App) FetchImpactSummary(ctx context.Context, userID string) (*model.ImpactSummary, error) {
	key := query.NewKey(query.DomainGamification, "impact", userID)
	summary, err := query.Get(ctx, a.Cache, key, query.StaleImpact, func(ctx context.Context) (*model.ImpactSummary, error) {
		return a.API.ImpactSummary(ctx, userID)
	})
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	a.Gamification.Dispatch(store.SetImpactMetrics{Metrics: summary})
	return summary, nil
}

// LogMealImpact records a logged meal's impact. New unlocks flow into
// the store immediately; the full achievement view reconciles on the
// next read after invalidation.
func (a *App) LogMealImpact(ctx context.Context, userID string, in api.MealImpactInput) (*api.MealImpactResult, error) {
	mut := query.NewMutation(a.Cache, func(ctx context.Context) (*api.MealImpactResult, error) {
		return a.API.LogMealImpact(ctx, userID, in)
	}, query.InvalidatesMealImpact()...)

	res, err := mut.Do(ctx)
	if err != nil {
		a.Gamification.Dispatch(store.SetGamificationError{Message: err.Error()})
		return nil, err
	}
	for _, ach := range res.NewAchievements {
		a.Gamification.Dispatch(store.UnlockAchievement{ID: ach.ID})
	}
	return res, nil
}
