package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surfaceplanner/surfaced/internal/cli/client"
)

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the gateway is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses first server if not specified)")

	return cmd
}

func runHealth(serverAlias string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	apiClient := client.New(server.URL)

	health, err := apiClient.Health()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", health.Service, health.Status)
	return nil
}
