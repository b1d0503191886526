package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	feedbackRecipeID    string
	feedbackRating      float64
	feedbackWeight      float64
	feedbackHbA1c       float64
	feedbackCholesterol float64
	feedbackSelectedID  int
	feedbackReward      float64
	feedbackJSON        bool
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Send feedback that improves your recommendations",
}

var feedbackTasteCmd = &cobra.Command{
	Use:   "taste",
	Short: "Rate a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			result, err := a.LogTasteFeedback(cmd.Context(), api.TasteFeedback{
				UserID:   userID,
				RecipeID: feedbackRecipeID,
				Rating:   feedbackRating,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

var feedbackHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report a measured health outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			outcome := api.HealthOutcome{
				UserID:       userID,
				ActualWeight: feedbackWeight,
			}
			if cmd.Flags().Changed("hba1c") {
				outcome.ActualHbA1c = &feedbackHbA1c
			}
			if cmd.Flags().Changed("cholesterol") {
				outcome.ActualCholesterol = &feedbackCholesterol
			}
			result, err := a.LogHealthOutcome(cmd.Context(), outcome)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

var feedbackSelectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Record which suggested meal you actually chose",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			result, err := a.LogMealSelection(cmd.Context(), api.MealSelection{
				UserID:           userID,
				SelectedRecipeID: feedbackSelectedID,
				Reward:           feedbackReward,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

var modelStatsCmd = &cobra.Command{
	Use:   "model-stats <name>",
	Short: "Show training stats for a recommendation model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			stats, err := a.ModelStats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if feedbackJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model: %s\n", stats.Model)
			fmt.Fprintf(cmd.OutOrStdout(), "Updates: %d | Buffer: %d\n", stats.UpdateCount, stats.BufferSize)
			for name, v := range stats.Metrics {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %v\n", name, v)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd, modelStatsCmd)
	feedbackCmd.AddCommand(feedbackTasteCmd, feedbackHealthCmd, feedbackSelectionCmd)

	feedbackTasteCmd.Flags().StringVar(&feedbackRecipeID, "recipe", "", "Recipe id")
	feedbackTasteCmd.Flags().Float64Var(&feedbackRating, "rating", 0, "Rating (1-5)")
	_ = feedbackTasteCmd.MarkFlagRequired("recipe")
	_ = feedbackTasteCmd.MarkFlagRequired("rating")

	feedbackHealthCmd.Flags().Float64Var(&feedbackWeight, "weight", 0, "Measured weight in kg")
	feedbackHealthCmd.Flags().Float64Var(&feedbackHbA1c, "hba1c", 0, "Measured HbA1c")
	feedbackHealthCmd.Flags().Float64Var(&feedbackCholesterol, "cholesterol", 0, "Measured cholesterol")
	_ = feedbackHealthCmd.MarkFlagRequired("weight")

	feedbackSelectionCmd.Flags().IntVar(&feedbackSelectedID, "recipe", 0, "Selected recipe id")
	feedbackSelectionCmd.Flags().Float64Var(&feedbackReward, "reward", 1, "Selection reward signal")
	_ = feedbackSelectionCmd.MarkFlagRequired("recipe")

	modelStatsCmd.Flags().BoolVar(&feedbackJSON, "json", false, "Output as JSON")
}
