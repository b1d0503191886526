package store

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
)

func TestUnlockAchievementFlipsOnlyTarget(t *testing.T) {
	t.Parallel()
	st := NewGamificationStore(zerolog.Nop())
	st.Dispatch(SetAchievements{Achievements: []model.Achievement{
		{ID: "first_meal", Name: "First Meal"},
		{ID: "week_streak", Name: "Week Streak"},
	}})

	st.Dispatch(UnlockAchievement{ID: "week_streak"})

	achievements := st.State().Achievements
	require.Len(t, achievements, 2)
	assert.False(t, achievements[0].Unlocked)
	assert.True(t, achievements[1].Unlocked)
}

func TestUnlockUnknownAchievementIsBenignNoop(t *testing.T) {
	t.Parallel()
	st := NewGamificationStore(zerolog.Nop())
	st.Dispatch(SetAchievements{Achievements: []model.Achievement{{ID: "first_meal"}}})

	st.Dispatch(UnlockAchievement{ID: "does_not_exist"})

	achievements := st.State().Achievements
	require.Len(t, achievements, 1)
	assert.False(t, achievements[0].Unlocked)
}

func TestSetLeaderboardReplacesOneBoardType(t *testing.T) {
	t.Parallel()
	st := NewGamificationStore(zerolog.Nop())

	carbon := []model.LeaderboardEntry{{UserID: "u1", Rank: 1, Score: 42}}
	health := []model.LeaderboardEntry{{UserID: "u2", Rank: 1, Score: 90}}
	st.Dispatch(SetLeaderboard{Type: "carbon_saved", Entries: carbon})
	st.Dispatch(SetLeaderboard{Type: "health_score", Entries: health})

	boards := st.State().Leaderboards
	assert.Equal(t, carbon, boards["carbon_saved"])
	assert.Equal(t, health, boards["health_score"])

	// A refetch replaces wholesale; old entries never merge in.
	refreshed := []model.LeaderboardEntry{{UserID: "u3", Rank: 1, Score: 50}}
	st.Dispatch(SetLeaderboard{Type: "carbon_saved", Entries: refreshed})
	assert.Equal(t, refreshed, st.State().Leaderboards["carbon_saved"])
	assert.Equal(t, health, st.State().Leaderboards["health_score"])
}

func TestSetImpactMetrics(t *testing.T) {
	t.Parallel()
	st := NewGamificationStore(zerolog.Nop())
	metrics := &model.ImpactSummary{TotalCarbonSaved: 12.5, TotalMealsLogged: 40}
	st.Dispatch(SetImpactMetrics{Metrics: metrics})
	assert.Same(t, metrics, st.State().ImpactMetrics)
	assert.False(t, st.State().Loading)
}
