package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surfaceplanner/surfaced/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var serverURL, alias string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a surfacectl configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(serverURL, alias)
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", "http://localhost:8080", "Gateway URL")
	cmd.Flags().StringVar(&alias, "alias", "default", "Server alias")

	return cmd
}

func runInit(serverURL, alias string) error {
	cfg := &config.Config{
		Servers: []config.Server{
			{URL: serverURL, Alias: alias},
		},
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Created %s pointing at %s\n", config.ConfigFileName, serverURL)
	return nil
}
