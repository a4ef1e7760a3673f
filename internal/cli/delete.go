package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uniqueId> <id>",
		Short: "Delete a comment",
		Long:  "Delete one comment from an entity. Logs in with the stored admin credentials.",
		Args:  cobra.ExactArgs(2),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %s", args[1])
	}

	c, err := newAdminClient()
	if err != nil {
		return err
	}

	if err := c.DeleteComment(args[0], id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]interface{}{"uniqueId": args[0], "id": id, "deleted": true})
	}

	fmt.Printf("Comment #%d deleted from %s.\n", id, args[0])
	return nil
}
