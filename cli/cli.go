// Package cli provides command-line access to the indicator's view of the
// network. It lets users inspect the current connection state and the
// recorded transition history from the terminal without running the tray.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/yllada/netbar/common"
	"github.com/yllada/netbar/config"
	"github.com/yllada/netbar/history"
	"github.com/yllada/netbar/indicator"
	"github.com/yllada/netbar/netmanager"
)

// CLI represents the command-line interface.
type CLI struct {
	cfg *config.Module
}

// New creates a new CLI instance using the given indicator configuration.
func New(cfg *config.Module) *CLI {
	return &CLI{cfg: cfg}
}

// Status prints the current set of known connections, the displayed
// connection, and the icon the indicator resolves for it.
func (c *CLI) Status() error {
	client, err := netmanager.New()
	if err != nil {
		return fmt.Errorf("failed to reach the system bus: %w", err)
	}
	defer client.Close()

	snap := client.Snapshot()
	state := indicator.Arbitrate(snap)
	icon := indicator.ResolveIcon(state, c.cfg)

	if len(snap.Connections) == 0 {
		fmt.Println("No known connections (network service unreachable or no devices).")
		fmt.Printf("Indicator shows: %s\n", icon)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tACTIVE\tENABLED\tSTRENGTH\tDISPLAYED")
	fmt.Fprintln(w, "----\t--\t------\t-------\t--------\t---------")

	for _, conn := range snap.Connections {
		active := "No"
		if conn.Active {
			active = "Yes"
		}
		enabled := "No"
		if conn.Enabled {
			enabled = "Yes"
		}
		strength := "-"
		if conn.Kind == netmanager.KindWifi && conn.Active {
			strength = fmt.Sprintf("%d%%", conn.Strength)
		}
		displayed := ""
		if state.Present && conn.ID == state.Connection.ID {
			displayed = "*"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			conn.Kind, shortID(conn.ID), active, enabled, strength, displayed)
	}
	w.Flush()

	fmt.Printf("\nIndicator shows: %s\n", icon)
	return nil
}

// History prints the most recent recorded connection transitions, newest
// first.
func (c *CLI) History(limit int) error {
	dataDir, err := common.GetDataDir()
	if err != nil {
		return fmt.Errorf("failed to locate the data directory: %w", err)
	}

	path := filepath.Join(dataDir, common.HistoryFileName)
	if !common.FileExists(path) {
		fmt.Println("No transition history recorded yet.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open transition history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read transition history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No transition history recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tID\tICON")
	fmt.Fprintln(w, "----\t----\t--\t----")

	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.At.Local().Format(time.DateTime), entry.Kind, shortID(entry.ConnectionID), entry.Icon)
	}
	w.Flush()
	return nil
}

// shortID truncates object paths for display.
func shortID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > 40 {
		return "..." + id[len(id)-37:]
	}
	return id
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`NetBar - NetworkManager connection indicator

Usage:
  netbar [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --config PATH     Use an alternate configuration file
  --status          Print the current connection state and exit
  --history N       Print the last N recorded transitions and exit
  --help            Show this help message

Examples:
  netbar
  netbar --status
  netbar --history 20
  netbar --config ~/my-bar/netbar.yaml

Notes:
  - Run without options to start the tray indicator
  - Transition history is recorded only while the tray is running`)
}
