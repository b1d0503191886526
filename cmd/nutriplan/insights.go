package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	insightsPeriod   string
	insightsForecast int
	insightsJSON     bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Health, taste, and variety analytics",
}

var insightsHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show your health score over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			points, err := a.HealthInsights(cmd.Context(), userID, insightsPeriod)
			if err != nil {
				return err
			}
			if insightsJSON {
				return printJSON(cmd.OutOrStdout(), points)
			}
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %.1f\n", p.Date, p.Score)
			}
			return nil
		})
	},
}

var insightsTasteCmd = &cobra.Command{
	Use:   "taste",
	Short: "Show your learned taste profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			points, err := a.TasteInsights(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if insightsJSON {
				return printJSON(cmd.OutOrStdout(), points)
			}
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %.1f / %.0f\n", p.Subject, p.Value, p.FullMark)
			}
			return nil
		})
	},
}

var insightsVarietyCmd = &cobra.Command{
	Use:   "variety",
	Short: "Show your cuisine variety breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			points, err := a.VarietyInsights(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if insightsJSON {
				return printJSON(cmd.OutOrStdout(), points)
			}
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %.0f\n", p.Name, p.Value)
			}
			return nil
		})
	},
}

var insightsPredictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forecast your health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			prediction, err := a.PredictHealth(cmd.Context(), userID, insightsForecast)
			if err != nil {
				return err
			}
			if insightsJSON {
				return printJSON(cmd.OutOrStdout(), prediction)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current score: %.1f\n", prediction.CurrentScore)
			fmt.Fprintf(cmd.OutOrStdout(), "Predicted score (+%d days): %.1f\n", insightsForecast, prediction.PredictedScore)
			for _, p := range prediction.Forecast {
				fmt.Fprintf(cmd.OutOrStdout(), "  day %d: %.1f\n", p.Day, p.Score)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.AddCommand(insightsHealthCmd, insightsTasteCmd, insightsVarietyCmd, insightsPredictCmd)

	insightsHealthCmd.Flags().StringVar(&insightsPeriod, "period", "month", "Period: week, month, or year")
	insightsPredictCmd.Flags().IntVar(&insightsForecast, "days", 30, "Forecast horizon in days")
	for _, c := range []*cobra.Command{insightsHealthCmd, insightsTasteCmd, insightsVarietyCmd, insightsPredictCmd} {
		c.Flags().BoolVar(&insightsJSON, "json", false, "Output as JSON")
	}
}
