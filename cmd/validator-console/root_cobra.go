package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/exitcodes"
	"github.com/injective-ops/validator-console/internal/files"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/update"
)

// Version information - set via -ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// updateCheckResult stores the result of the background update check
var (
	updateCheckResult *update.CheckResult
	updateCheckMu     sync.Mutex
)

// rootCmd wires the CLI surface using Cobra. Persistent flags are applied
// to a loaded config in loadCfg(). Subcommands implement the actual
// operations (register, delegate, unjail, status, etc.).
var rootCmd = &cobra.Command{
	Use:           "validator-console",
	Short:         "Injective Validator Console",
	Long:          "Administer an Injective validator: register, edit, delegate, unjail, and monitor.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize global UI config from flags after parsing but before command execution
		ui.InitGlobal(ui.Config{
			NoColor:        flagNoColor,
			NoEmoji:        flagNoEmoji,
			Yes:            flagYes,
			NonInteractive: flagNonInteractive,
			Verbose:        flagVerbose,
			Quiet:          flagQuiet,
		})

		// Set NO_COLOR env so lipgloss and other libraries respect the flag
		if flagNoColor {
			os.Setenv("NO_COLOR", "1")
		}

		// Background update check (non-blocking)
		if !shouldSkipUpdateCheck(cmd) {
			go checkForUpdateBackground()
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		updateCheckMu.Lock()
		result := updateCheckResult
		updateCheckMu.Unlock()
		if !shouldSkipUpdateCheck(cmd) && result != nil && result.UpdateAvailable {
			showUpdateNotification(result.LatestVersion)
		}
	},
}

var (
	flagNetwork        string
	flagRPC            string
	flagREST           string
	flagKeyIndex       uint32
	flagValidator      string
	flagOutput         string
	flagVerbose        bool
	flagQuiet          bool
	flagNoColor        bool
	flagNoEmoji        bool
	flagYes            bool
	flagNonInteractive bool
)

func init() {
	// Persistent flags to override defaults
	rootCmd.PersistentFlags().StringVar(&flagNetwork, "network", "", "Network: mainnet|testnet (overrides env and saved prefs)")
	rootCmd.PersistentFlags().StringVar(&flagRPC, "rpc", "", "CometBFT RPC base URL (http[s]://host:port)")
	rootCmd.PersistentFlags().StringVar(&flagREST, "rest", "", "LCD REST base URL")
	rootCmd.PersistentFlags().Uint32Var(&flagKeyIndex, "key-index", 0, "BIP-44 account index for mnemonic signers")
	rootCmd.PersistentFlags().StringVar(&flagValidator, "validator", "", "Operator address for monitoring commands (overrides saved prefs)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|yaml|text")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet mode: minimal output (suppresses extras)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&flagNoEmoji, "no-emoji", false, "Disable emoji output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Assume yes for all prompts")
	rootCmd.PersistentFlags().BoolVar(&flagNonInteractive, "non-interactive", false, "Fail instead of prompting")

	// Replace root help to present grouped, example-rich output.
	// Only apply custom help to the root command; subcommands use cobra's default help.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			fmt.Fprintln(os.Stdout, cmd.UsageString())
			return
		}
		// Help runs before PersistentPreRun, so manually configure colors
		c := ui.NewColorConfig()
		c.Enabled = c.Enabled && !flagNoColor
		c.EmojiEnabled = c.EmojiEnabled && !flagNoEmoji
		w := os.Stdout

		// Fixed column width for command alignment (longest command + buffer)
		const cmdWidth = 34

		fmt.Fprintln(w, c.Header(" Injective Validator Console "))
		fmt.Fprintln(w, c.Description("Administer an Injective validator: register, edit, delegate, unjail, and monitor."))
		fmt.Fprintln(w, c.Separator(50))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("USAGE"))
		fmt.Fprintf(w, "  %s <command> [flags]\n", "validator-console")
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Monitoring"))
		fmt.Fprintln(w, c.FormatCommandAligned("status", "Show chain head and validator status", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("watch", "Live watch view with validator metrics", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("validators", "List the validator set", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("balance [address]", "Check account balance", cmdWidth))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Validator"))
		fmt.Fprintln(w, c.FormatCommandAligned("register", "Register a new validator", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("edit-validator", "Update validator metadata/commission", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("set-orchestrator", "Set Peggy orchestrator addresses", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("unjail", "Restore jailed validator to active status", cmdWidth))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Staking"))
		fmt.Fprintln(w, c.FormatCommandAligned("delegate", "Delegate tokens to a validator", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("undelegate", "Undelegate tokens from a validator", cmdWidth))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Configuration"))
		fmt.Fprintln(w, c.FormatCommandAligned("config show", "Show the resolved configuration", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("config set", "Save network/validator preferences", cmdWidth))
		fmt.Fprintln(w)

		fmt.Fprintln(w, c.SubHeader("Upgrades"))
		fmt.Fprintln(w, c.FormatCommandAligned("update", "Update validator-console to latest version", cmdWidth))
		fmt.Fprintln(w, c.FormatCommandAligned("version", "Show version information", cmdWidth))
		fmt.Fprintln(w)
	})
}

// silentErr wraps errors whose message was already printed by the
// handler; Execute suppresses the duplicate stderr line.
type silentErr struct{ error }

func (e silentErr) Unwrap() error { return e.error }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var se silentErr
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitcodes.CodeForError(err))
	}
}

// loadCfg resolves the network config in precedence order: flags, env
// (via config.Load), saved preferences, defaults.
func loadCfg() config.Config {
	prefs, _ := files.New(files.DefaultDir()).Load()

	network := flagNetwork
	if network == "" {
		network = os.Getenv("NETWORK")
	}
	if network == "" {
		network = prefs.Network
	}

	cfg, err := config.Resolve(network)
	if err != nil {
		cfg = config.Load()
	}
	if prefs.RPCURL != "" {
		cfg.RPCURL = prefs.RPCURL
	}
	if prefs.RESTURL != "" {
		cfg.RESTURL = prefs.RESTURL
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("REST_URL"); v != "" {
		cfg.RESTURL = v
	}
	if flagRPC != "" {
		cfg.RPCURL = flagRPC
	}
	if flagREST != "" {
		cfg.RESTURL = flagREST
	}
	return cfg
}
