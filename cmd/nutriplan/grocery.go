package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/api"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	groceryDaysAhead int
	groceryQuantity  float64
	groceryPrice     float64
	groceryJSON      bool
)

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Shopping list predictions and purchase tracking",
}

var groceryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the predicted shopping list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			list, err := a.FetchShoppingList(cmd.Context(), userID, groceryDaysAhead)
			if err != nil {
				return err
			}
			if groceryJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ITEM\tQTY\tCOST\tURGENCY")
			for _, it := range list.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t$%.2f\t%.2f\n", it.Item, it.PredictedQuantity, it.EstimatedCost, it.Urgency)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d items | est. $%.2f | %d urgent | covers %d days\n",
				list.Summary.TotalItems, list.Summary.EstimatedTotalCost, list.Summary.UrgentItems, list.Summary.DaysCovered)
			return nil
		})
	},
}

var groceryPredictCmd = &cobra.Command{
	Use:   "predict <item>",
	Short: "Predict when you will next need an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			prediction, err := a.PredictNextPurchase(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}
			if groceryJSON {
				return printJSON(cmd.OutOrStdout(), prediction)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item: %s\n", prediction.Item)
			if days, ok := prediction.Prediction["days_until_purchase"]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Next purchase in: %.0f days\n", days)
			}
			if prediction.Recommendation != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Recommendation: %s\n", prediction.Recommendation)
			}
			return nil
		})
	},
}

var groceryPurchaseCmd = &cobra.Command{
	Use:   "purchase <item>",
	Short: "Record a purchase so future predictions improve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			items := []api.PurchaseItem{{Item: args[0], Quantity: groceryQuantity, Price: groceryPrice}}
			result, err := a.RecordPurchase(cmd.Context(), userID, items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s (tracking %d items)\n", args[0], result.TotalItemsTracked)
			return nil
		})
	},
}

var groceryConsumeCmd = &cobra.Command{
	Use:   "consume <item>",
	Short: "Record consumption of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			result, err := a.RecordConsumption(cmd.Context(), userID, args[0], groceryQuantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded; current stock %.1f (%.2f/day)\n", result.CurrentStock, result.ConsumptionRate)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(groceryCmd)
	groceryCmd.AddCommand(groceryListCmd, groceryPredictCmd, groceryPurchaseCmd, groceryConsumeCmd)

	groceryListCmd.Flags().IntVar(&groceryDaysAhead, "days", 7, "Days of meals the list should cover")
	for _, c := range []*cobra.Command{groceryListCmd, groceryPredictCmd} {
		c.Flags().BoolVar(&groceryJSON, "json", false, "Output as JSON")
	}
	groceryPurchaseCmd.Flags().Float64Var(&groceryQuantity, "quantity", 1, "Quantity purchased")
	groceryPurchaseCmd.Flags().Float64Var(&groceryPrice, "price", 0, "Price paid")
	groceryConsumeCmd.Flags().Float64Var(&groceryQuantity, "quantity", 1, "Quantity consumed")
}
