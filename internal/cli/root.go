package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surfaceplanner/surfaced/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "surfacectl",
	Short: "surfacectl - Operate a Surface Planner gateway",
	Long: `surfacectl - Operator CLI for the Surface Planner gateway.

Check gateway health, exercise the mail relay, and audit form
submissions from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("surfacectl version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewTestEmailCmd())
	rootCmd.AddCommand(commands.NewSubmissionsCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
