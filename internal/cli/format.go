package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/loudly/loudly/internal/client"
	"github.com/loudly/loudly/internal/comment"
	"github.com/loudly/loudly/internal/entity"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCommentPage prints one page of comments in text format.
func printCommentPage(p *client.Page) {
	fmt.Printf("Comments for %s (page %d, %d total):\n\n", p.UniqueID, p.Page, p.Total)
	printCommentList(p.Comments)
}

// printCommentList prints comments in text format.
func printCommentList(comments []*comment.Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments.")
		return
	}

	for _, c := range comments {
		fmt.Printf("[%s] #%d (%s)\n  %s\n\n",
			c.CreatedAt.Format("2006-01-02 15:04"), c.ID, displayName(c.Nickname), c.Content)
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(c *comment.Comment) {
	fmt.Printf("Comment #%d added by %s.\n  %s\n", c.ID, displayName(c.Nickname), c.Content)
}

// printEntity prints the moderation state of one entity.
func printEntity(e *entity.Entity) {
	fmt.Printf("%s: %s\n", e.ID, banLabel(e.Banned))
}

// printEntityTable prints entities as a formatted table.
func printEntityTable(entities []*entity.Entity) error {
	if len(entities) == 0 {
		fmt.Println("No banned entities.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "UNIQUE ID\tSTATE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "---------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, e := range entities {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", truncate(e.ID, 60), banLabel(e.Banned)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d entities\n", len(entities))
	return nil
}

// displayName returns the nickname, or "anonymous" when it is empty.
func displayName(nickname string) string {
	if nickname == "" {
		return "anonymous"
	}
	return nickname
}

func banLabel(banned bool) string {
	if banned {
		return "banned"
	}
	return "open"
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
