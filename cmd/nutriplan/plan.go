package nutriplan

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	planOutputJSON   bool
	planRefresh      bool
	planHistoryLimit int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and manage your weekly meal plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh meal plan from your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			profile := a.Users.State().Profile
			if profile == nil {
				return fmt.Errorf("no profile found; run: nutriplan profile set")
			}
			plan, err := a.CreatePlan(cmd.Context(), *profile)
			if err != nil {
				return err
			}
			if planOutputJSON {
				return printJSON(cmd.OutOrStdout(), plan)
			}
			renderPlan(cmd, plan)
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current meal plan (cached when fresh)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			if !planRefresh {
				loaded, err := a.LoadCachedPlan()
				if err != nil {
					return err
				}
				if loaded {
					plan := a.Plans.State().CurrentPlan
					if planOutputJSON {
						return printJSON(cmd.OutOrStdout(), plan)
					}
					renderPlan(cmd, plan)
					return nil
				}
			}
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			plan, err := a.FetchPlan(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if planOutputJSON {
				return printJSON(cmd.OutOrStdout(), plan)
			}
			renderPlan(cmd, plan)
			return nil
		})
	},
}

var planRegenerateDayCmd = &cobra.Command{
	Use:   "regenerate-day <day>",
	Short: "Regenerate a single day of the current plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayIndex, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		return withApp(func(a *service.App) error {
			if _, err := a.LoadCachedPlan(); err != nil {
				return err
			}
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			day, err := a.RegenerateDay(cmd.Context(), userID, dayIndex)
			if err != nil {
				return err
			}
			if planOutputJSON {
				return printJSON(cmd.OutOrStdout(), day)
			}
			renderDay(cmd, day)
			return nil
		})
	},
}

var planSwapCmd = &cobra.Command{
	Use:   "swap <day> <slot>",
	Short: "Swap one meal slot (breakfast, lunch, dinner, snack) of a day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dayIndex, err := parseDayArg(args[0])
		if err != nil {
			return err
		}
		slot := args[1]
		return withApp(func(a *service.App) error {
			if _, err := a.LoadCachedPlan(); err != nil {
				return err
			}
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			recipe, err := a.SwapMeal(cmd.Context(), userID, dayIndex, slot)
			if err != nil {
				return err
			}
			if planOutputJSON {
				return printJSON(cmd.OutOrStdout(), recipe)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day %d %s is now: %s (%.0f kcal)\n", dayIndex+1, slot, recipe.Name, recipe.Calories)
			return nil
		})
	},
}

var planHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated plans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			plans, err := a.PlanHistory(planHistoryLimit)
			if err != nil {
				return err
			}
			if planOutputJSON {
				return printJSON(cmd.OutOrStdout(), plans)
			}
			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plan history yet")
				return nil
			}
			for i, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %d days", i+1, len(p.Days))
				if kcal, ok := p.OverallStats["avg_daily_calories"]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), " | avg %.0f kcal/day", kcal)
				}
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		})
	},
}

func parseDayArg(value string) (int, error) {
	day, err := strconv.Atoi(value)
	if err != nil || day < 1 {
		return 0, fmt.Errorf("invalid day %q (expected 1-based day number)", value)
	}
	return day - 1, nil
}

func renderPlan(cmd *cobra.Command, plan *model.MealPlan) {
	for _, day := range plan.Days {
		renderDay(cmd, day)
	}
	if plan.ShoppingList != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Shopping list: %d items, est. $%.2f\n",
			plan.ShoppingList.Summary.TotalItems, plan.ShoppingList.Summary.EstimatedTotalCost)
	}
}

func renderDay(cmd *cobra.Command, day *model.DailyPlan) {
	fmt.Fprintf(cmd.OutOrStdout(), "Day %d\n", day.Day)
	slots := make([]string, 0, len(day.Meals))
	for slot := range day.Meals {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slotOrder(slots[i]) < slotOrder(slots[j]) })
	for _, slot := range slots {
		recipe := day.Meals[slot]
		fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %s (%.0f kcal | P %.0fg C %.0fg F %.0fg)\n",
			slot+":", recipe.Name, recipe.Calories, recipe.Macros.Protein, recipe.Macros.Carbs, recipe.Macros.Fat)
	}
	if kcal, ok := day.TotalStats["calories"]; ok {
		fmt.Fprintf(cmd.OutOrStdout(), "  total:    %.0f kcal\n", kcal)
	}
}

func slotOrder(slot string) int {
	switch slot {
	case "breakfast":
		return 0
	case "lunch":
		return 1
	case "dinner":
		return 2
	case "snack":
		return 3
	default:
		return 4
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd, planShowCmd, planRegenerateDayCmd, planSwapCmd, planHistoryCmd)

	for _, c := range []*cobra.Command{planGenerateCmd, planShowCmd, planRegenerateDayCmd, planSwapCmd, planHistoryCmd} {
		c.Flags().BoolVar(&planOutputJSON, "json", false, "Output as JSON")
	}
	planShowCmd.Flags().BoolVar(&planRefresh, "refresh", false, "Skip the local cache and fetch from the backend")
	planHistoryCmd.Flags().IntVar(&planHistoryLimit, "limit", 10, "Max plans to list")
}
