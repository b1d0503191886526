package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	sustainPeriod string
	sustainJSON   bool
)

var sustainabilityCmd = &cobra.Command{
	Use:   "sustainability",
	Short: "Show your sustainability metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			data, err := a.SustainabilityData(cmd.Context(), userID, sustainPeriod)
			if err != nil {
				return err
			}
			if sustainJSON {
				return printJSON(cmd.OutOrStdout(), data)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Carbon saved: %.1f kg\n", data.CarbonSavedKg)
			fmt.Fprintf(cmd.OutOrStdout(), "Water saved: %.0f L\n", data.WaterSavedL)
			fmt.Fprintf(cmd.OutOrStdout(), "Trees planted equivalent: %.1f\n", data.TreesPlantedEquivalent)
			fmt.Fprintf(cmd.OutOrStdout(), "Sustainable meals: %d\n", data.SustainableMealsCount)
			return nil
		})
	},
}

var carbonCmd = &cobra.Command{
	Use:   "carbon",
	Short: "Show your carbon footprint breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			breakdown, err := a.CarbonFootprint(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if sustainJSON {
				return printJSON(cmd.OutOrStdout(), breakdown)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total footprint: %.1f kg CO2e\n", breakdown.TotalFootprint)
			fmt.Fprintf(cmd.OutOrStdout(), "Average per meal: %.2f kg CO2e\n", breakdown.AverageMealFootprint)
			for _, item := range breakdown.Breakdown {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %.1f\n", item.Category, item.Value)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sustainabilityCmd)
	sustainabilityCmd.AddCommand(carbonCmd)

	sustainabilityCmd.Flags().StringVar(&sustainPeriod, "period", "month", "Period: week, month, or year")
	for _, c := range []*cobra.Command{sustainabilityCmd, carbonCmd} {
		c.Flags().BoolVar(&sustainJSON, "json", false, "Output as JSON")
	}
}
