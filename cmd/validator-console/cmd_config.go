package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/injective-ops/validator-console/internal/config"
	"github.com/injective-ops/validator-console/internal/exitcodes"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save console preferences",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleConfigShow(newDeps())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save preferences for future invocations",
	Long: `Persist defaults so --network, --validator, and --key-index do
not have to be repeated. Flags and environment variables always override
saved preferences.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleConfigSet(newDeps())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func handleConfigShow(d *Deps) error {
	out := map[string]any{
		"network":  string(d.Cfg.Network),
		"chain_id": d.Cfg.ChainID,
		"rpc_url":  d.Cfg.RPCURL,
		"rest_url": d.Cfg.RESTURL,
		"denom":    d.Cfg.Denom,
		"explorer": d.Cfg.ExplorerBase,
		"prefs":    d.Prefs.Path(),
	}
	if flagOutput == "json" || flagOutput == "yaml" {
		d.Printer.Structured(out)
		return nil
	}
	d.Printer.KeyValueLine("Network", string(d.Cfg.Network), "blue")
	d.Printer.KeyValueLine("Chain ID", d.Cfg.ChainID, "blue")
	d.Printer.KeyValueLine("RPC", d.Cfg.RPCURL, "blue")
	d.Printer.KeyValueLine("REST", d.Cfg.RESTURL, "blue")
	d.Printer.KeyValueLine("Denom", d.Cfg.Denom, "blue")
	d.Printer.KeyValueLine("Prefs file", d.Prefs.Path(), "blue")
	return nil
}

// handleConfigSet folds the current flags into the saved preferences.
// Only explicitly provided values overwrite what is already stored.
func handleConfigSet(d *Deps) error {
	prefs, _ := d.Prefs.Load()

	if flagNetwork != "" {
		if _, err := config.Resolve(flagNetwork); err != nil {
			return exitcodes.InvalidArgsErrorf("%v", err)
		}
		prefs.Network = flagNetwork
	}
	if flagRPC != "" {
		prefs.RPCURL = flagRPC
	}
	if flagREST != "" {
		prefs.RESTURL = flagREST
	}
	if flagValidator != "" {
		prefs.ValidatorAddress = flagValidator
	}
	if flagKeyIndex != 0 {
		prefs.KeyIndex = flagKeyIndex
	}

	if err := d.Prefs.Save(prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	d.Printer.Success("Preferences saved to " + d.Prefs.Path())
	return nil
}
