package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/client"
)

func newLoginCmd() *cobra.Command {
	var server, user string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify and store admin credentials",
		Long:  "Reads the admin password from stdin, checks it against the server and stores the credentials for delete and remote moderation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(server, user, os.Stdin)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or "+defaultServerURL+")")
	cmd.Flags().StringVar(&user, "user", "loudly", "admin user name")

	return cmd
}

func runLogin(serverFlag, user string, in io.Reader) error {
	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}

	fmt.Print("Admin password: ")
	password, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading input: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	if err := validateCredentials(user, password); err != nil {
		return err
	}

	if err := client.New(serverURL).Login(user, password); err != nil {
		return fmt.Errorf("logging in to %s: %w", serverURL, err)
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.AdminUser = user
	cfg.AdminPassword = password
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\n✓ Credentials saved. You're logged in!")
	return nil
}

// validateCredentials checks that both parts of the admin identity are set.
func validateCredentials(user, password string) error {
	if user == "" {
		return fmt.Errorf("no admin user provided")
	}
	if password == "" {
		return fmt.Errorf("no password provided")
	}
	return nil
}
