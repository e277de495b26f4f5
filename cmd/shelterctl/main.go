// shelterctl is the staff command line for the shelter backend. It shares
// the credential store with the other clients, so a login from the CLI
// survives restarts and token refreshes happen transparently.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"shelterhub/config"
	"shelterhub/internal/credstore"
	"shelterhub/internal/logging"
	"shelterhub/internal/session"
	"shelterhub/internal/shelterapi"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shelterctl",
	Short: "Manage shelter animals, tasks and hotel stays from the terminal",
	Long: `shelterctl talks to the shelter backend API.

Configuration comes from environment variables (a .env file is honored):
  SHELTERHUB_API_URL              backend base URL (default http://localhost:8080)
  SHELTERHUB_CREDENTIALS_PATH     token storage location
  SHELTERHUB_CREDENTIALS_BACKEND  file (default), sqlite, redis or memory
  SHELTERHUB_ORG_ID               preselected organization`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newAPIClient builds the API client and session from the environment.
func newAPIClient() (*shelterapi.Client, *session.Session, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadCtlConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}

	creds, err := credstore.Open(cfg.CredentialsBackend, cfg.CredentialsPath, cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(logging.Options{
		Format: "text",
		Level:  level,
		Output: os.Stderr,
	})

	client := shelterapi.New(cfg.BaseURL, creds, logger)
	sess := session.New(client, creds, logger)

	if cfg.OrganizationID != "" {
		client.SetOrganization(cfg.OrganizationID)
	}

	return client, sess, nil
}

// requireSession restores the persisted session, failing with a hint when
// the user is not logged in.
func requireSession(ctx context.Context) (*shelterapi.Client, *session.Session, error) {
	client, sess, err := newAPIClient()
	if err != nil {
		return nil, nil, err
	}

	if err := sess.Restore(ctx); err != nil {
		if shelterapi.IsUnauthenticated(err) {
			return nil, nil, fmt.Errorf("not logged in, run: shelterctl login <email>")
		}
		return nil, nil, err
	}

	return client, sess, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(orgCmd)
	rootCmd.AddCommand(animalsCmd)
	rootCmd.AddCommand(kennelsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(feedingCmd)
	rootCmd.AddCommand(hotelCmd)
	rootCmd.AddCommand(overviewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
