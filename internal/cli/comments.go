package cli

import (
	"github.com/spf13/cobra"
)

func newCommentsCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "comments <uniqueId>",
		Short: "List comments for an entity",
		Long:  "List one page of comments for an entity, oldest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComments(args[0], page, limit)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "comments per page (default: server setting)")

	return cmd
}

func runComments(uniqueID string, page, limit int) error {
	p, err := newAPIClient().ListComments(uniqueID, page, limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}

	printCommentPage(p)
	return nil
}
