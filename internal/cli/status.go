package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connection and login status",
		Long:  "Tests the connection to the server and checks whether the stored admin credentials are accepted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	serverURL := getServerURL()
	user, password := getCredentials()

	fmt.Printf("Server:  %s\n", serverURL)

	c := client.New(serverURL)
	if err := c.Health(); err != nil {
		fmt.Printf("Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}

	if user == "" {
		fmt.Println("Admin:   not configured")
		fmt.Println("Status:  ✓ connected")
		fmt.Println("\nRun 'loudly login' to authenticate.")
		return nil
	}
	fmt.Printf("Admin:   %s\n", user)

	err := c.Login(user, password)
	var apiErr *client.Error
	switch {
	case err == nil:
		fmt.Println("Status:  ✓ connected and authenticated")
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden:
		fmt.Printf("Status:  ✗ %s\n", apiErr.Msg)
		fmt.Println("\nRun 'loudly login' to re-authenticate.")
	default:
		fmt.Printf("Status:  ✗ unexpected response (%v)\n", err)
	}

	return nil
}
