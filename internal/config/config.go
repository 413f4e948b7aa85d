package config

import (
	"fmt"
	"os"
	"strings"
)

// Network identifies one of the chain deployments the console can talk to.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Config holds user/system configuration for the console. A Config is a
// resolved network selection plus the knobs commands need to build and
// submit transactions.
type Config struct {
	Network       Network
	ChainID       string
	RPCURL        string // CometBFT RPC, e.g. https://sentry.tm.injective.network:443
	RESTURL       string // LCD, e.g. https://sentry.lcd.injective.network:443
	ExplorerBase  string // explorer root, tx pages live at {ExplorerBase}/tx/{hash}
	Bech32Prefix  string // account address prefix, e.g. inj
	ValoperPrefix string // validator operator address prefix, e.g. injvaloper
	Denom         string // staking denom in base units (18 decimals)
}

// Defaults returns the mainnet configuration.
func Defaults() Config { return ForNetwork(Mainnet) }

// ForNetwork resolves a network selection to its endpoints and prefixes.
// Unknown networks fall back to mainnet; Resolve validates first.
func ForNetwork(n Network) Config {
	switch n {
	case Testnet:
		return Config{
			Network:       Testnet,
			ChainID:       "injective-888",
			RPCURL:        "https://testnet.sentry.tm.injective.network:443",
			RESTURL:       "https://testnet.sentry.lcd.injective.network:443",
			ExplorerBase:  "https://testnet.explorer.injective.network",
			Bech32Prefix:  "inj",
			ValoperPrefix: "injvaloper",
			Denom:         "inj",
		}
	default:
		return Config{
			Network:       Mainnet,
			ChainID:       "injective-1",
			RPCURL:        "https://sentry.tm.injective.network:443",
			RESTURL:       "https://sentry.lcd.injective.network:443",
			ExplorerBase:  "https://explorer.injective.network",
			Bech32Prefix:  "inj",
			ValoperPrefix: "injvaloper",
			Denom:         "inj",
		}
	}
}

// Resolve parses a network name (case-insensitive) into a Config.
func Resolve(name string) (Config, error) {
	switch Network(strings.ToLower(strings.TrimSpace(name))) {
	case Mainnet, "":
		return ForNetwork(Mainnet), nil
	case Testnet:
		return ForNetwork(Testnet), nil
	}
	return Config{}, fmt.Errorf("unknown network %q (expected mainnet or testnet)", name)
}

// Load returns the config for the NETWORK env var (mainnet when unset),
// applying RPC_URL/REST_URL endpoint overrides. Flags take precedence over
// env in the command layer.
func Load() Config {
	cfg, err := Resolve(os.Getenv("NETWORK"))
	if err != nil {
		cfg = Defaults()
	}
	if v := os.Getenv("RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("REST_URL"); v != "" {
		cfg.RESTURL = v
	}
	return cfg
}

// ExplorerTxURL renders the explorer link for a transaction hash.
func (c Config) ExplorerTxURL(hash string) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(c.ExplorerBase, "/"), hash)
}
