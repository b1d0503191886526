package nutriplan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	recipeTags  string
	recipeLimit int
	recipeJSON  bool
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Search and inspect recipes",
}

var recipeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes by name or ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			recipes, err := a.SearchRecipes(cmd.Context(), args[0], recipeTags, recipeLimit)
			if err != nil {
				return err
			}
			if recipeJSON {
				return printJSON(cmd.OutOrStdout(), recipes)
			}
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipes found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL\tCUISINE")
			for _, r := range recipes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%s\n", r.ID, r.Name, r.Calories, r.Cuisine)
			}
			return nil
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show recipe details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			recipe, err := a.RecipeDetails(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if recipeJSON {
				return printJSON(cmd.OutOrStdout(), recipe)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", recipe.Name)
			if recipe.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", recipe.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %.0f | P %.0fg C %.0fg F %.0fg\n",
				recipe.Calories, recipe.Macros.Protein, recipe.Macros.Carbs, recipe.Macros.Fat)
			if recipe.ReadyInMin > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Ready in: %d min | Servings: %d\n", recipe.ReadyInMin, recipe.Servings)
			}
			if len(recipe.Ingredients) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Ingredients: %s\n", strings.Join(recipe.Ingredients, ", "))
			}
			for i, step := range recipe.Instructions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, step)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeSearchCmd, recipeShowCmd)

	recipeSearchCmd.Flags().StringVar(&recipeTags, "tags", "", "Comma-separated tags to filter by")
	recipeSearchCmd.Flags().IntVar(&recipeLimit, "limit", 20, "Max recipes to return")
	for _, c := range []*cobra.Command{recipeSearchCmd, recipeShowCmd} {
		c.Flags().BoolVar(&recipeJSON, "json", false, "Output as JSON")
	}
}
