package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/surfaceplanner/surfaced/internal/cli/auth"
	"github.com/surfaceplanner/surfaced/internal/cli/client"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password, serverAlias string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Surface Planner gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password, serverAlias)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SURFACECTL_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SURFACECTL_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses first server if not specified)")

	return cmd
}

func runLogin(email, password, serverAlias string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("SURFACECTL_EMAIL")
	}
	if password == "" {
		password = os.Getenv("SURFACECTL_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SURFACECTL_EMAIL env var)")
	}

	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or SURFACECTL_PASSWORD env var)")
		}
	}

	return loginWithStores(server.URL, email, password, auth.Default)
}

// loginWithStores performs the login with an injectable token store so
// tests can avoid the OS keyring
func loginWithStores(serverURL, email, password string, tokens auth.TokenStore) error {
	apiClient := client.New(serverURL)

	resp, err := apiClient.Login(email, password)
	if err != nil {
		return err
	}

	if err := tokens.SaveToken(serverURL, resp.Token); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
	return nil
}
