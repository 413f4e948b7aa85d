package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/files"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		switch flagOutput {
		case "json", "yaml":
			getPrinter().Structured(map[string]string{
				"version":    Version,
				"commit":     Commit,
				"build_date": BuildDate,
			})
		default:
			fmt.Printf("validator-console %s (%s) built %s\n", Version, Commit, BuildDate)
		}
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unknown shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// checkForUpdateBackground performs a non-blocking update check.
// Uses cache to avoid checking more than once per 24 hours.
// Stores result in updateCheckResult global for use by PersistentPostRun.
func checkForUpdateBackground() {
	cacheDir := files.DefaultDir()

	// Check cache first (avoid network calls if recently checked)
	cache, err := update.LoadCache(cacheDir)
	if err == nil && update.IsCacheValid(cache) {
		// Use cached result, but re-verify in case version changed (e.g., after update)
		if cache.UpdateAvailable && update.IsNewerVersion(Version, cache.LatestVersion) {
			updateCheckMu.Lock()
			updateCheckResult = &update.CheckResult{
				CurrentVersion:  strings.TrimPrefix(Version, "v"),
				LatestVersion:   cache.LatestVersion,
				UpdateAvailable: true,
			}
			updateCheckMu.Unlock()
		}
		return
	}

	result, err := update.ForceCheck(cacheDir, Version)
	if err != nil {
		return // Silently fail - don't disrupt user's command
	}

	if result.UpdateAvailable {
		updateCheckMu.Lock()
		updateCheckResult = result
		updateCheckMu.Unlock()
	}
}

// showUpdateNotification displays an update notification after command completes.
func showUpdateNotification(latestVersion string) {
	// Don't show in JSON/YAML output modes
	if flagOutput == "json" || flagOutput == "yaml" {
		return
	}
	if flagQuiet {
		return
	}

	c := ui.NewColorConfigFromGlobal()

	fmt.Println()
	fmt.Println(c.Warning("─────────────────────────────────────────────────────────────"))
	fmt.Printf(c.Warning("  Update available: %s → %s\n"), Version, latestVersion)
	fmt.Println(c.Info("  Run: validator-console update"))
	fmt.Println(c.Warning("─────────────────────────────────────────────────────────────"))
}

// shouldSkipUpdateCheck returns true for commands where update notifications are disruptive
func shouldSkipUpdateCheck(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "update", "help", "version", "completion", "watch":
		return true
	}
	return false
}
