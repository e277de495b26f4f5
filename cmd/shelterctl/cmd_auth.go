package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginPassword string

// loginCmd authenticates and persists the token pair.
var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and persist credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := newAPIClient()
		if err != nil {
			return err
		}

		password := loginPassword
		if password == "" {
			password = os.Getenv("SHELTERHUB_PASSWORD")
		}
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimSpace(line)
		}

		if err := sess.Login(cmd.Context(), args[0], password); err != nil {
			return err
		}

		user := sess.User()
		fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
		if orgID := sess.OrganizationID(); orgID != "" {
			fmt.Printf("Active organization: %s\n", orgID)
		}
		return nil
	},
}

// logoutCmd clears the persisted credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := newAPIClient()
		if err != nil {
			return err
		}

		sess.Logout(cmd.Context())
		fmt.Println("Logged out.")
		return nil
	},
}

// whoamiCmd shows the current user and memberships.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user and organizations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sess, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}

		user := sess.User()
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		fmt.Println("Organizations:")
		for _, m := range sess.Memberships() {
			marker := " "
			if m.OrganizationID == sess.OrganizationID() {
				marker = "*"
			}
			fmt.Printf(" %s %s (%s, %s)\n", marker, m.OrganizationName, m.OrganizationID, m.Role)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if not given)")
}
