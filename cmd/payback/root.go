// ABOUTME: Root Cobra command for payback CLI.
// ABOUTME: Loads config and opens the storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/payback/internal/config"
	"github.com/harperreed/payback/internal/models"
	"github.com/harperreed/payback/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	profile models.Profile
)

var rootCmd = &cobra.Command{
	Use:   "payback",
	Short: "Drink-debt tracker: every beer priced in exercise minutes",
	Long: `Payback is a CLI tool that prices every drink in exercise minutes.

THE DEAL:

  Each drink you log becomes a debt, converted from calories to minutes
  of your reference exercise using your body profile. Each exercise you
  log pays it back. Keep the balance at zero and your liver forgives you.

QUICK START:

  $ payback drink hazy_ipa                  # Log a beer (350ml can)
  $ payback drink hazy_ipa --size 500 -c 2  # Two tall cans
  $ payback drink styles                    # See the style catalog
  $ payback exercise 30                     # 30 min of your default exercise
  $ payback exercise 45 --type running      # 45 min of running
  $ payback status                          # Balance, streak, grade
  $ payback list                            # Recent ledger entries

CHECK-INS & STREAKS:

  $ payback checkin --rest                  # Mark today an alcohol-free day
  $ payback checkin --rest --weight 58.5    # ...and record weight

  Three consecutive rest days earn a 1.2x bonus on exercise; two earn
  1.1x. Drinking on a day you exercised revokes that day's bonus
  retroactively. Deleting the drink restores it.

SYNC (OPTIONAL):

  Set "backend": "charm" in your config to sync the ledger across
  devices via Charm Cloud, E2E encrypted with your SSH key.

  $ payback sync link      # Link device to your Charm account
  $ payback sync status    # Check sync status

MCP INTEGRATION:

  Run 'payback mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants. Add to your
  Claude config:

  {
    "mcpServers": {
      "payback": { "command": "payback", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The ledger is stored in SQLite at ~/.local/share/payback/payback.db
  by default. Config lives at ~/.config/payback/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		profile = cfg.GetProfile()

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
