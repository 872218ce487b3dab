package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/surfaceplanner/surfaced/internal/cli/auth"
	"github.com/surfaceplanner/surfaced/internal/cli/client"
)

// NewSubmissionsCmd creates the submissions command
func NewSubmissionsCmd() *cobra.Command {
	var serverAlias string
	var limit int

	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"subs"},
		Short:   "List recent form submissions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmissions(serverAlias, limit)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server alias (uses first server if not specified)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of submissions to list")

	return cmd
}

func runSubmissions(serverAlias string, limit int) error {
	server, err := getSelectedServer(serverAlias)
	if err != nil {
		return err
	}

	token, err := auth.Default.LoadToken(server.URL)
	if err != nil {
		return err
	}

	apiClient := client.New(server.URL)

	subs, err := apiClient.ListSubmissions(token, limit)
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("No submissions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tKIND\tNAME\tEMAIL\tSTATUS")
	for _, sub := range subs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			sub.CreatedAt.Format("2006-01-02 15:04"),
			sub.Kind,
			sub.Name,
			sub.Email,
			sub.Status,
		)
	}
	return w.Flush()
}
