// Package main provides the entry point for NetBar.
// NetBar is a NetworkManager connection indicator for Linux status bars:
// it watches the system's primary connection over D-Bus and keeps a single
// icon up to date with it.
//
// Features:
//   - Live primary-connection tracking via NetworkManager's D-Bus API
//   - Wired, wireless, cellular, and VPN connection awareness
//   - Wireless signal strength shown as bucketed icon levels
//   - System tray surface with rasterized theme glyphs
//   - Command-line interface for status queries and transition history
//
// Usage:
//
//	netbar [options]
//
// Environment:
//
//	The application requires NetworkManager and a session with a system
//	D-Bus available.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/yllada/netbar/cli"
	"github.com/yllada/netbar/common"
	"github.com/yllada/netbar/config"
	"github.com/yllada/netbar/history"
	"github.com/yllada/netbar/indicator"
	"github.com/yllada/netbar/netmanager"
	"github.com/yllada/netbar/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// Tray/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	configPath  = flag.String("config", "", "Use an alternate configuration file")

	// CLI flags
	showStatus   = flag.Bool("status", false, "Print the current connection state and exit")
	historyLimit = flag.Int("history", 0, "Print the last N recorded transitions and exit")
)

func main() {
	flag.Parse()

	// Handle help flag
	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:      logLevel,
		EnableFile: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// Load the indicator configuration. An invalid configuration is a
	// startup error for both CLI and tray mode.
	cfg, err := loadConfig()
	if err != nil {
		common.LogError("Configuration error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals (SIGINT, SIGTERM)
	setupSignalHandler(cancel)

	// Check if any CLI mode flag is set
	if *showStatus || *historyLimit > 0 {
		runCLI(ctx, cfg)
		return
	}

	// Start the tray indicator
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	if err := runTray(ctx, cfg); err != nil {
		common.LogError("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration path and loads it. Flag value wins
// over the default location; a missing file yields the built-in defaults.
func loadConfig() (*config.Module, error) {
	path := *configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return config.Load(path)
}

// runCLI handles command-line interface operations.
func runCLI(ctx context.Context, cfg *config.Module) {
	// Check if context is already cancelled before proceeding
	select {
	case <-ctx.Done():
		common.LogInfo("Operation cancelled before execution")
		return
	default:
	}

	cliApp := cli.New(cfg)

	var cliErr error
	switch {
	case *showStatus:
		cliErr = cliApp.Status()
	case *historyLimit > 0:
		cliErr = cliApp.History(*historyLimit)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}

// runTray wires the adapter, indicator module, history store, and tray host
// together and blocks until shutdown.
func runTray(ctx context.Context, cfg *config.Module) error {
	client, err := netmanager.New()
	if err != nil {
		return common.WrapError(err, "connecting to the system bus")
	}
	defer client.Close()

	host := ui.NewTrayHost()

	module, err := indicator.New(cfg, client, host)
	if err != nil {
		return err
	}

	// The history store is best effort: the indicator runs without it.
	store := openHistory()
	if store != nil {
		defer store.Close()
		module.SetOnChange(func(state indicator.PrimaryState, icon string) {
			entry := history.Entry{Kind: "none", Icon: icon}
			if state.Present {
				entry.Kind = state.Connection.Kind.String()
				entry.ConnectionID = state.Connection.ID
			}
			if err := store.Record(entry); err != nil {
				common.LogWarn("Failed to record transition: %v", err)
			}
		})
	}

	host.Run(ctx, module)
	return nil
}

// openHistory opens the transition store in the data directory, logging and
// returning nil on failure.
func openHistory() *history.Store {
	dataDir, err := common.GetDataDir()
	if err != nil {
		common.LogWarn("Transition history disabled: %v", err)
		return nil
	}

	store, err := history.Open(filepath.Join(dataDir, common.HistoryFileName))
	if err != nil {
		common.LogWarn("Transition history disabled: %v", err)
		return nil
	}
	return store
}

// setupSignalHandler configures graceful shutdown on SIGINT/SIGTERM.
// When a signal is received, it cancels the context so the tray host and
// the render loop can wind down.
func setupSignalHandler(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
	}()
}
