package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/models"
)

func (c *Cli) registerCommand() *cobra.Command {
	var (
		username     string
		role         string
		passwordFile string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies()
			if err != nil {
				return err
			}

			if username == "" {
				if username, err = c.io.ReadInput("Username: "); err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
			}

			password, err := c.readPassword(passwordFile, "Password: ")
			if err != nil {
				return err
			}

			userID, err := deps.Auth.Register(cmd.Context(), username, password, models.Role(role))
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			c.io.Println("✓ Registration successful!")
			c.io.Printf("User ID: %s\n", userID)
			c.io.Println("Use 'fitsync login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&role, "role", string(models.RoleClient), "Account role: client or trainer")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "Read password from file")
	return cmd
}

func (c *Cli) loginCommand() *cobra.Command {
	var (
		username     string
		passwordFile string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and load your data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies()
			if err != nil {
				return err
			}

			if username == "" {
				if username, err = c.io.ReadInput("Username: "); err != nil {
					return fmt.Errorf("failed to read username: %w", err)
				}
			}

			password, err := c.readPassword(passwordFile, "Password: ")
			if err != nil {
				return err
			}

			if err := deps.Session.Login(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			user := deps.Session.User()
			c.io.Println("✓ Login successful!")
			c.io.Printf("Signed in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "Read password from file")
	return cmd
}

func (c *Cli) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove credentials from this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies()
			if err != nil {
				return err
			}

			if err := deps.Session.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}

			c.io.Println("✓ Logged out")
			return nil
		},
	}
}

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account and sync status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.io.Println("=== fitsync status ===")
			c.io.Printf("Server: %s\n", c.cfg.ServerURL)

			managers, err := c.open(cmd.Context())
			if errors.Is(err, errNotAuthenticated) {
				c.io.Println("Status: not authenticated")
				c.io.Println("Use 'fitsync login' to sign in.")
				return nil
			}
			if err != nil {
				return err
			}

			deps, err := c.dependencies()
			if err != nil {
				return err
			}
			user := deps.Session.User()

			c.io.Printf("Status: %s\n", deps.Session.State())
			c.io.Printf("Username: %s\n", user.Username)
			c.io.Printf("Role: %s\n", user.Role)
			c.io.Printf("User ID: %s\n", user.UserID)
			if user.ExpiresAt > 0 {
				c.io.Printf("Token expires: %s\n", formatTime(time.Unix(user.ExpiresAt, 0)))
			}
			c.io.Printf("Pending changes: %d\n", managers.Pending())

			rows := make([][]string, 0, len(managers.All()))
			for _, m := range managers.All() {
				rows = append(rows, []string{m.Collection(), fmt.Sprint(m.Len())})
			}
			return table(c.io, []string{"COLLECTION", "RECORDS"}, rows)
		},
	}
}
