package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	boardType     string
	boardPeriod   string
	boardLimit    int
	impactCarbon  float64
	impactHealth  float64
	impactVariety float64
	impactTaste   float64
	gamifyJSON    bool
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Show your achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			achievements, err := a.FetchAchievements(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if gamifyJSON {
				return printJSON(cmd.OutOrStdout(), achievements)
			}
			for _, ach := range achievements {
				mark := " "
				if ach.Unlocked {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s) %.0f%% | %d pts\n", mark, ach.Name, ach.Category, ach.Progress*100, ach.Points)
			}
			return nil
		})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show a community leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			board, err := a.FetchLeaderboard(cmd.Context(), boardType, boardPeriod, boardLimit)
			if err != nil {
				return err
			}
			if gamifyJSON {
				return printJSON(cmd.OutOrStdout(), board)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Leaderboard: %s (%s)\n", board.Type, board.Period)
			for _, e := range board.Entries {
				name := e.Username
				if name == "" {
					name = e.UserID
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s  %.1f\n", e.Rank, name, e.Score)
			}
			return nil
		})
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show your rank on a leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			rank, err := a.FetchUserRank(cmd.Context(), userID, boardType)
			if err != nil {
				return err
			}
			if gamifyJSON {
				return printJSON(cmd.OutOrStdout(), rank)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rank: #%d on %s (score %.1f", rank.Rank, rank.Type, rank.Score)
			if rank.Total > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", of %d users", rank.Total)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
			return nil
		})
	},
}

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Show your cumulative impact summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			summary, err := a.FetchImpactSummary(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if gamifyJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Carbon saved: %.1f kg\n", summary.TotalCarbonSaved)
			fmt.Fprintf(cmd.OutOrStdout(), "Meals logged: %d\n", summary.TotalMealsLogged)
			fmt.Fprintf(cmd.OutOrStdout(), "Avg health score: %.1f\n", summary.AverageHealthScore)
			for name, v := range summary.Equivalents {
				fmt.Fprintf(cmd.OutOrStdout(), "  = %.1f %s\n", v, name)
			}
			return nil
		})
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your meal-logging streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			streak, err := a.FetchStreak(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if gamifyJSON {
				return printJSON(cmd.OutOrStdout(), streak)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current streak: %d days (best %d)\n", streak.StreakDays, streak.BestStreak)
			return nil
		})
	},
}

var logMealCmd = &cobra.Command{
	Use:   "log-meal",
	Short: "Log a meal's impact toward achievements and leaderboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			in := api.MealImpactInput{
				CarbonFootprint: impactCarbon,
				HealthScore:     impactHealth,
				VarietyScore:    impactVariety,
			}
			if cmd.Flags().Changed("taste") {
				in.TasteRating = &impactTaste
			}
			result, err := a.LogMealImpact(cmd.Context(), userID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged; total points %d\n", result.TotalPoints)
			for _, ach := range result.NewAchievements {
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked: %s (+%d pts)\n", ach.Name, ach.Points)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd, leaderboardCmd, rankCmd, impactCmd, streakCmd, logMealCmd)

	for _, c := range []*cobra.Command{achievementsCmd, leaderboardCmd, rankCmd, impactCmd, streakCmd} {
		c.Flags().BoolVar(&gamifyJSON, "json", false, "Output as JSON")
	}
	leaderboardCmd.Flags().StringVar(&boardType, "type", "carbon_saved", "Leaderboard type")
	leaderboardCmd.Flags().StringVar(&boardPeriod, "period", "month", "Leaderboard period: week, month, or all_time")
	leaderboardCmd.Flags().IntVar(&boardLimit, "limit", 100, "Max entries to return")
	rankCmd.Flags().StringVar(&boardType, "type", "carbon_saved", "Leaderboard type")

	logMealCmd.Flags().Float64Var(&impactCarbon, "carbon", 0, "Meal carbon footprint in kg CO2e")
	logMealCmd.Flags().Float64Var(&impactHealth, "health", 0, "Meal health score (0-100)")
	logMealCmd.Flags().Float64Var(&impactVariety, "variety", 0, "Meal variety score (0-100)")
	logMealCmd.Flags().Float64Var(&impactTaste, "taste", 0, "Taste rating (1-5)")
	_ = logMealCmd.MarkFlagRequired("carbon")
	_ = logMealCmd.MarkFlagRequired("health")
}
