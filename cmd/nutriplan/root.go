package nutriplan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutriplan",
	Short: "nutriplan plans meals, groceries, and sustainability goals from your terminal",
	Long: "nutriplan is the command-line client for the NutriFlavorOS backend: " +
		"meal-plan generation and editing, recipe search, grocery predictions, " +
		"achievements and leaderboards, and sustainability insights, with a local " +
		"cache so your last plan and profile survive between runs.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite state database")
}
