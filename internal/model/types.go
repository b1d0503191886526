package model

// Macros is the per-serving macro breakdown of a recipe.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type Recipe struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	ImageURL      string             `json:"image_url,omitempty"`
	Ingredients   []string           `json:"ingredients"`
	Calories      float64            `json:"calories"`
	Macros        Macros             `json:"macros"`
	FlavorProfile map[string]float64 `json:"flavor_profile,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
	Cuisine       string             `json:"cuisine,omitempty"`
	Instructions  []string           `json:"instructions,omitempty"`
	ReadyInMin    int                `json:"ready_in_minutes,omitempty"`
	Servings      int                `json:"servings,omitempty"`
	HealthScore   float64            `json:"health_score,omitempty"`
}

// DailyPlan is one day of a meal plan. Meals is keyed by slot name
// (breakfast, lunch, dinner, snack); slot keys are stable identifiers,
// never array positions.
type DailyPlan struct {
	Day        int                `json:"day"`
	Meals      map[string]*Recipe `json:"meals"`
	TotalStats map[string]float64 `json:"total_stats"`
	Scores     map[string]float64 `json:"scores"`
}

type ShoppingListItem struct {
	Item              string  `json:"item"`
	Category          string  `json:"category,omitempty"`
	PredictedQuantity float64 `json:"predicted_quantity"`
	EstimatedCost     float64 `json:"estimated_cost"`
	Urgency           float64 `json:"urgency"`
}

type ShoppingListSummary struct {
	TotalItems         int     `json:"total_items"`
	EstimatedTotalCost float64 `json:"estimated_total_cost"`
	DaysCovered        int     `json:"days_covered"`
	UrgentItems        int     `json:"urgent_items"`
}

type ShoppingList struct {
	Items   []ShoppingListItem  `json:"shopping_list"`
	Summary ShoppingListSummary `json:"summary"`
}

// MealPlan is the plan-generation response: a fixed-length run of days
// plus plan-wide aggregates.
type MealPlan struct {
	UserID       string             `json:"user_id"`
	Days         []*DailyPlan       `json:"days"`
	ShoppingList *ShoppingList      `json:"shopping_list,omitempty"`
	PrepTimeline map[int][]string   `json:"prep_timeline,omitempty"`
	OverallStats map[string]float64 `json:"overall_stats,omitempty"`
}

type UserProfile struct {
	ID                  string   `json:"id,omitempty"`
	Name                string   `json:"name,omitempty"`
	Age                 int      `json:"age"`
	WeightKg            float64  `json:"weight_kg"`
	HeightCm            float64  `json:"height_cm"`
	Gender              string   `json:"gender"`
	ActivityLevel       float64  `json:"activity_level"`
	Goal                string   `json:"goal"`
	LikedIngredients    []string `json:"liked_ingredients,omitempty"`
	DislikedIngredients []string `json:"disliked_ingredients,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	HealthConditions    []string `json:"health_conditions,omitempty"`
	Medications         []string `json:"medications,omitempty"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated state persisted between runs.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

type Achievement struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unlocked bool    `json:"unlocked"`
	Progress float64 `json:"progress"`
	Points   int     `json:"points"`
}

type AchievementList struct {
	Achievements []Achievement `json:"achievements"`
	TotalEarned  int           `json:"total_earned"`
}

type LeaderboardEntry struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username,omitempty"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"leaderboard"`
	Type    string             `json:"type"`
	Period  string             `json:"period"`
}

type UserRank struct {
	UserID string  `json:"user_id"`
	Type   string  `json:"leaderboard_type"`
	Rank   int     `json:"rank"`
	Score  float64 `json:"score"`
	Total  int     `json:"total_users,omitempty"`
}

// StreakInfo tracks consecutive days with at least one logged meal.
type StreakInfo struct {
	StreakDays int `json:"streak_days"`
	BestStreak int `json:"best_streak"`
}

type ImpactSummary struct {
	TotalCarbonSaved   float64            `json:"total_carbon_saved"`
	TotalMealsLogged   int                `json:"total_meals_logged"`
	AverageHealthScore float64            `json:"average_health_score"`
	Equivalents        map[string]float64 `json:"equivalents,omitempty"`
}

type SustainabilityData struct {
	CarbonSavedKg          float64 `json:"carbon_saved_kg"`
	WaterSavedL            float64 `json:"water_saved_l"`
	TreesPlantedEquivalent float64 `json:"trees_planted_equivalent"`
	SustainableMealsCount  int     `json:"sustainable_meals_count"`
}

type CarbonBreakdownItem struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type CarbonBreakdown struct {
	TotalFootprint       float64               `json:"total_footprint"`
	AverageMealFootprint float64               `json:"average_meal_footprint"`
	Breakdown            []CarbonBreakdownItem `json:"breakdown"`
}

type GroceryPrediction struct {
	Item           string             `json:"item"`
	Prediction     map[string]float64 `json:"prediction"`
	Recommendation string             `json:"recommendation"`
}

type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Checked  bool    `json:"checked,omitempty"`
}

type HealthInsightPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

type TasteDataPoint struct {
	Subject  string  `json:"subject"`
	Value    float64 `json:"A"`
	FullMark float64 `json:"fullMark"`
}

type VarietyDataPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type HealthForecastPoint struct {
	Day   int     `json:"day"`
	Score float64 `json:"score"`
}

type HealthPrediction struct {
	CurrentScore   float64               `json:"current_score"`
	PredictedScore float64               `json:"predicted_score"`
	Forecast       []HealthForecastPoint `json:"forecast"`
}
