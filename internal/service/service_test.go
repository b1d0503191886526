package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/db"
	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/query"
	"github.com/nutriflavoros/nutriplan-cli/internal/store"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *db.StateStore) {
	t.Helper()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nutriplan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	state := db.NewStateStore(sqldb)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := api.New(ts.URL, api.WithHTTPClient(ts.Client()))
	cache := query.NewCache()
	return NewApp(client, cache, state, zerolog.Nop()), state
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func stubPlan(userID string) *model.MealPlan {
	return &model.MealPlan{
		UserID: userID,
		Days: []*model.DailyPlan{
			{Day: 1, Meals: map[string]*model.Recipe{
				"breakfast": {ID: "r1", Name: "Oatmeal", Calories: 320},
				"dinner":    {ID: "r2", Name: "Lentil Curry", Calories: 540},
			}},
		},
	}
}

func TestCreatePlanPersistsAndRecordsHistory(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meals/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, stubPlan("u1"))
	})
	app, state := newTestApp(t, mux)

	plan, err := app.CreatePlan(context.Background(), model.UserProfile{Age: 31, Gender: "female", Goal: "maintenance"})
	require.NoError(t, err)
	require.NotNil(t, plan)

	s := app.Plans.State()
	assert.Same(t, plan, s.CurrentPlan)
	require.Len(t, s.PlanHistory, 1)
	assert.False(t, s.Loading)

	stored, _, err := state.LoadPlan()
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)

	history, err := state.ListPlanHistory(10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLoadCachedPlanHonorsFreshness(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meals/generate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, stubPlan("u1"))
	})
	app, state := newTestApp(t, mux)

	// Nothing stored yet.
	loaded, err := app.LoadCachedPlan()
	require.NoError(t, err)
	assert.False(t, loaded)

	_, err = app.CreatePlan(context.Background(), model.UserProfile{Age: 31, Gender: "other", Goal: "maintenance"})
	require.NoError(t, err)

	// A second app over the same state store sees the plan without any
	// network call.
	app2 := NewApp(api.New("http://127.0.0.1:0"), query.NewCache(), state, zerolog.Nop())
	loaded, err = app2.LoadCachedPlan()
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "u1", app2.Plans.State().CurrentPlan.UserID)
}

func TestSwapMealAppliesServerConfirmedRecipe(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meals/swap_meal", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &model.Recipe{ID: "r9", Name: "Tofu Bowl", Calories: 430})
	})
	app, _ := newTestApp(t, mux)
	app.Plans.Dispatch(store.SetPlan{Plan: stubPlan("u1")})

	recipe, err := app.SwapMeal(context.Background(), "u1", 0, "dinner")
	require.NoError(t, err)
	assert.Equal(t, "Tofu Bowl", recipe.Name)
	assert.Equal(t, "r9", app.Plans.State().CurrentPlan.Days[0].Meals["dinner"].ID)
	assert.Equal(t, "r1", app.Plans.State().CurrentPlan.Days[0].Meals["breakfast"].ID)
}

func TestSwapMealFailureLeavesPlanUntouched(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/meals/swap_meal", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "no plan"}`, http.StatusNotFound)
	})
	app, _ := newTestApp(t, mux)
	plan := stubPlan("u1")
	app.Plans.Dispatch(store.SetPlan{Plan: plan})

	_, err := app.SwapMeal(context.Background(), "u1", 0, "dinner")
	require.Error(t, err)
	// No optimistic write happened, so there is nothing to roll back.
	assert.Same(t, plan, app.Plans.State().CurrentPlan)
	assert.NotEmpty(t, app.Plans.State().Err)
}

func TestFetchLeaderboardCachedPerParams(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/gamification/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, &model.Leaderboard{
			Type:    r.URL.Query().Get("leaderboard_type"),
			Period:  r.URL.Query().Get("period"),
			Entries: []model.LeaderboardEntry{{UserID: "u1", Rank: 1, Score: 42}},
		})
	})
	app, _ := newTestApp(t, mux)

	first, err := app.FetchLeaderboard(context.Background(), "carbon_saved", "month", 100)
	require.NoError(t, err)
	second, err := app.FetchLeaderboard(context.Background(), "carbon_saved", "month", 100)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	// A different period is a different key, not a refetch of the same
	// one.
	_, err = app.FetchLeaderboard(context.Background(), "carbon_saved", "week", 100)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	assert.Len(t, app.Gamification.State().Leaderboards["carbon_saved"], 1)
}

func TestProfileMirroredToLocalStateOnEveryTransition(t *testing.T) {
	t.Parallel()
	app, state := newTestApp(t, http.NewServeMux())

	// No user id yet: the edit applies locally only.
	err := app.UpdateProfile(context.Background(), model.UserProfile{Name: "Dana", Age: 31, Gender: "female", Goal: "maintenance"})
	require.NoError(t, err)

	stored, err := state.LoadProfile()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Dana", stored.Name)

	// A second app hydrates the mirrored profile before any network
	// call.
	app2 := NewApp(api.New("http://127.0.0.1:0"), query.NewCache(), state, zerolog.Nop())
	require.NotNil(t, app2.Users.State().Profile)
	assert.Equal(t, 31, app2.Users.State().Profile.Age)
}

func TestRecordPurchaseInvalidatesGroceryReads(t *testing.T) {
	t.Parallel()
	var listHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/grocery/shopping_list/u1", func(w http.ResponseWriter, r *http.Request) {
		listHits.Add(1)
		writeJSON(t, w, &model.ShoppingList{
			Items:   []model.ShoppingListItem{{Item: "oats", PredictedQuantity: 1}},
			Summary: model.ShoppingListSummary{TotalItems: 1},
		})
	})
	mux.HandleFunc("/api/v1/grocery/purchase", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &api.PurchaseResult{Status: "ok", TotalItemsTracked: 3})
	})
	app, _ := newTestApp(t, mux)

	_, err := app.FetchShoppingList(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Equal(t, int32(1), listHits.Load())

	res, err := app.RecordPurchase(context.Background(), "u1", []api.PurchaseItem{{Item: "oats", Quantity: 1, Price: 3.5}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalItemsTracked)

	// The post-purchase refresh refetched the list.
	require.Eventually(t, func() bool { return listHits.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, app.Grocery.State().ShoppingList, 1)
}

func TestLogMealImpactUnlocksReportedAchievements(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/gamification/log_meal", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &api.MealImpactResult{
			Status:          "ok",
			TotalPoints:     120,
			NewAchievements: []model.Achievement{{ID: "week_streak", Name: "Week Streak"}},
		})
	})
	app, _ := newTestApp(t, mux)
	app.Gamification.Dispatch(store.SetAchievements{Achievements: []model.Achievement{
		{ID: "first_meal", Unlocked: true},
		{ID: "week_streak"},
	}})

	res, err := app.LogMealImpact(context.Background(), "u1", api.MealImpactInput{CarbonFootprint: 1.2, HealthScore: 80})
	require.NoError(t, err)
	assert.Equal(t, 120, res.TotalPoints)

	achievements := app.Gamification.State().Achievements
	assert.True(t, achievements[1].Unlocked)
}

func TestFetchStreakUpdatesGamificationState(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/gamification/streak/u1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &model.StreakInfo{StreakDays: 6, BestStreak: 14})
	})
	app, _ := newTestApp(t, mux)

	streak, err := app.FetchStreak(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, streak.StreakDays)
	assert.Equal(t, 14, streak.BestStreak)
	assert.Equal(t, 6, app.Gamification.State().Streak)
}

func TestLoginPersistsSessionForNextRun(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &model.Session{
			AccessToken: "tok-xyz",
			User:        model.User{ID: "u1", Name: "Dana", Email: "dana@example.com"},
		})
	})
	app, state := newTestApp(t, mux)

	session, err := app.Login(context.Background(), "dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.User.ID)
	assert.Equal(t, "u1", app.Users.State().User.ID)

	app2 := NewApp(api.New("http://127.0.0.1:0"), query.NewCache(), state, zerolog.Nop())
	require.NotNil(t, app2.Users.State().User)
	assert.Equal(t, "dana@example.com", app2.Users.State().User.Email)

	require.NoError(t, app2.Logout())
	assert.Nil(t, app2.Users.State().User)
	stored, err := state.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, stored)
}
