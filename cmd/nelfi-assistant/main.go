// nelfi-assistant is the NELFUND marketing-site chat assistant as a terminal
// program: register or log in with a phone number, chat against the backend
// (or the canned fallback corpus when it is down), and inspect or reset the
// locally persisted conversation. `serve` runs the bundled dev backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Osisami00/Nelfund-Project/internal/config"
	"github.com/Osisami00/Nelfund-Project/internal/logger"
	"github.com/Osisami00/Nelfund-Project/internal/store/sqlitestore"
)

var rootCmd = &cobra.Command{
	Use:   "nelfi",
	Short: "NELFUND student-loan chat assistant",
}

func main() {
	rootCmd.AddCommand(chatCmd(), serveCmd(), resetCmd(), logoutCmd(), statusCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openState loads configuration and opens the SQLite state file every
// stateful subcommand shares.
func openState() (*config.Config, *sqlitestore.Store, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	st, err := sqlitestore.Open(cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state file %s: %w", cfg.StatePath, err)
	}
	return cfg, st, nil
}

var log = logger.New("nelfi")
