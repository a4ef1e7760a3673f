package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/client"
)

func newCommentCmd() *cobra.Command {
	var nickname string
	var icon int

	cmd := &cobra.Command{
		Use:   `comment <uniqueId> "text"`,
		Short: "Add a comment to an entity",
		Long:  "Post a text comment to an entity. Banned entities reject new comments.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComment(args[0], strings.Join(args[1:], " "), nickname, icon)
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "display name (default: anonymous)")
	cmd.Flags().IntVar(&icon, "icon", 0, "avatar icon id")

	return cmd
}

func runComment(uniqueID, text, nickname string, icon int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("comment text is required")
	}

	comm, err := newAPIClient().PostComment(uniqueID, client.NewComment{
		Content:  text,
		Nickname: nickname,
		IconID:   icon,
	})
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(comm)
	}

	printCommentSingle(comm)
	return nil
}
