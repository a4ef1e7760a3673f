package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/auth"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <user> <password> [timestamp]",
		Short: "Compute a login digest",
		Long: "Compute the password field of a login request: the SHA-1 hex digest of user, password and timestamp. " +
			"The timestamp defaults to the current time in milliseconds.",
		Args: cobra.RangeArgs(2, 3),
		RunE: runDigest,
	}
}

type digestOutput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Timestamp string `json:"timestamp"`
}

func runDigest(cmd *cobra.Command, args []string) error {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(args) == 3 {
		if _, err := strconv.ParseInt(args[2], 10, 64); err != nil {
			return fmt.Errorf("invalid timestamp: %s", args[2])
		}
		ts = args[2]
	}

	out := digestOutput{
		Username:  args[0],
		Password:  auth.Digest(args[0], args[1], ts),
		Timestamp: ts,
	}

	if isJSON() {
		return printJSON(out)
	}

	fmt.Printf("timestamp: %s\ndigest:    %s\n", out.Timestamp, out.Password)
	return nil
}
