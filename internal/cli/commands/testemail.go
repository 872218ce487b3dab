package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/surfaceplanner/surfaced/internal/cli/client"
)

// NewTestEmailCmd creates the test-email command
func NewTestEmailCmd() *cobra.Command {
	var serverAlias, from string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a test email through the gateway's mail relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTestEmail(serverAlias, from)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses first server if not specified)")
	cmd.Flags().StringVar(&from, "from", "ops@surfaceplanner.com", "Reply-to address for the test message")

	return cmd
}

func runTestEmail(serverAlias, from string) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	apiClient := client.New(server.URL)

	err = apiClient.SendTestEmail(client.TestEmailRequest{
		Name:    "surfacectl",
		Email:   from,
		Message: "Test message from surfacectl. If you can read this, the mail relay works.",
	})
	if err != nil {
		return err
	}

	fmt.Println("Test email sent")
	return nil
}
