package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/dashboard"
	"github.com/injective-ops/validator-console/internal/files"
	"github.com/injective-ops/validator-console/internal/query"
	ui "github.com/injective-ops/validator-console/internal/ui"
	"github.com/injective-ops/validator-console/internal/update"
)

var flagWatchRefresh time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live watch view with validator metrics",
	Long: `Full-screen view of the chain head, the signing account, the
operator's validator, and the validator set, refreshed on an interval.
Press q to quit, r to refresh, ? for help.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleWatch(newDeps())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchRefresh, "refresh", 5*time.Second, "Refresh interval")
	rootCmd.AddCommand(watchCmd)
}

// handleWatch starts the dashboard. The signing account is resolved from
// environment credentials only; the view never prompts for a mnemonic.
func handleWatch(d *Deps) error {
	acctAddr, _ := envAccount(d)

	opts := dashboard.Options{
		Config:           d.Cfg,
		Node:             d.Node,
		Fetcher:          query.NewFetcher(d.Cfg.RESTURL),
		AccountAddress:   acctAddr,
		ValidatorAddress: resolveValidatorAddress(d),
		RefreshInterval:  flagWatchRefresh,
		NoColor:          flagNoColor,
		NoEmoji:          flagNoEmoji,
		CLIVersion:       Version,
	}

	// The release banner reuses the cached check; the view itself never
	// hits the network for it.
	if cache, err := update.LoadCache(files.DefaultDir()); err == nil &&
		cache.UpdateAvailable && update.IsNewerVersion(Version, cache.LatestVersion) {
		opts.UpdateAvailable = true
		opts.UpdateVersion = cache.LatestVersion
	}

	err := dashboard.Run(opts)
	ui.ResetTerminalAfterTUI()
	return err
}
