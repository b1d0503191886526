package nutriplan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriflavoros/nutriplan-cli/internal/service"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authJSON     bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in, sign up, and manage the local session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			session, err := a.Login(cmd.Context(), authEmail, authPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", session.User.Name, session.User.Email)
			return nil
		})
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and store the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			session, err := a.Signup(cmd.Context(), authName, authEmail, authPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s (%s)\n", session.User.Name, session.User.Email)
			fmt.Fprintln(cmd.OutOrStdout(), "Next: nutriplan profile set --help")
			return nil
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			if err := a.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *service.App) error {
			session, err := a.CurrentSession()
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if authJSON {
				return printJSON(cmd.OutOrStdout(), session.User)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User: %s\nEmail: %s\nID: %s\n", session.User.Name, session.User.Email, session.User.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authSignupCmd, authLogoutCmd, authWhoamiCmd)

	for _, c := range []*cobra.Command{authLoginCmd, authSignupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
		_ = c.MarkFlagRequired("email")
		_ = c.MarkFlagRequired("password")
	}
	authSignupCmd.Flags().StringVar(&authName, "name", "", "Display name")
	_ = authSignupCmd.MarkFlagRequired("name")

	authWhoamiCmd.Flags().BoolVar(&authJSON, "json", false, "Output as JSON")
}
