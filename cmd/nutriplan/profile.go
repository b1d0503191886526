package nutriplan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/model"
	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	profileForm service.OnboardingForm
	profileJSON bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your nutrition profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			profile := a.Users.State().Profile
			if userID, err := requireUserID(a); err == nil {
				fetched, err := a.FetchProfile(cmd.Context(), userID)
				if err != nil {
					return err
				}
				profile = fetched
			}
			if profile == nil {
				return fmt.Errorf("no profile found; run: nutriplan profile set")
			}
			if profileJSON {
				return printJSON(cmd.OutOrStdout(), profile)
			}
			renderProfile(cmd, profile)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set your profile (onboarding)",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := service.CoerceProfile(profileForm)
		if err != nil {
			return err
		}
		return withApp(func(a *service.App) error {
			if err := a.UpdateProfile(cmd.Context(), profile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile saved")
			return nil
		})
	},
}

var profileAddConditionCmd = &cobra.Command{
	Use:   "add-condition <condition>",
	Short: "Record a health condition on your profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			profile, err := a.AddHealthCondition(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Conditions: %s\n", strings.Join(profile.HealthConditions, ", "))
			return nil
		})
	},
}

var profileAddMedicationCmd = &cobra.Command{
	Use:   "add-medication <medication>",
	Short: "Record a medication on your profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			userID, err := requireUserID(a)
			if err != nil {
				return err
			}
			profile, err := a.AddMedication(cmd.Context(), userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Medications: %s\n", strings.Join(profile.Medications, ", "))
			return nil
		})
	},
}

func renderProfile(cmd *cobra.Command, profile *model.UserProfile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", profile.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "Age: %d | Weight: %.1f kg | Height: %.1f cm\n", profile.Age, profile.WeightKg, profile.HeightCm)
	fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s | Activity: %.2f | Goal: %s\n", profile.Gender, profile.ActivityLevel, profile.Goal)
	if len(profile.LikedIngredients) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Likes: %s\n", strings.Join(profile.LikedIngredients, ", "))
	}
	if len(profile.DislikedIngredients) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Dislikes: %s\n", strings.Join(profile.DislikedIngredients, ", "))
	}
	if len(profile.DietaryRestrictions) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Restrictions: %s\n", strings.Join(profile.DietaryRestrictions, ", "))
	}
	if len(profile.HealthConditions) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Conditions: %s\n", strings.Join(profile.HealthConditions, ", "))
	}
	if len(profile.Medications) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Medications: %s\n", strings.Join(profile.Medications, ", "))
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileAddConditionCmd, profileAddMedicationCmd)

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")

	f := profileSetCmd.Flags()
	f.StringVar(&profileForm.Name, "name", "", "Display name")
	f.StringVar(&profileForm.Age, "age", "", "Age in years")
	f.StringVar(&profileForm.WeightKg, "weight", "", "Weight in kg")
	f.StringVar(&profileForm.HeightCm, "height", "", "Height in cm")
	f.StringVar(&profileForm.Gender, "gender", "", "Gender (male, female, other)")
	f.StringVar(&profileForm.ActivityLevel, "activity", "1.4", "Activity level multiplier (1.2-2.0)")
	f.StringVar(&profileForm.Goal, "goal", "", "Goal: weight_loss, maintenance, or muscle_gain")
	f.StringVar(&profileForm.LikedIngredients, "likes", "", "Comma-separated liked ingredients")
	f.StringVar(&profileForm.DislikedIngredients, "dislikes", "", "Comma-separated disliked ingredients")
	f.StringVar(&profileForm.DietaryRestrictions, "restrictions", "", "Comma-separated dietary restrictions")
	f.StringVar(&profileForm.HealthConditions, "conditions", "", "Comma-separated health conditions")
	f.StringVar(&profileForm.Medications, "medications", "", "Comma-separated medications")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("gender")
	_ = profileSetCmd.MarkFlagRequired("goal")
}
