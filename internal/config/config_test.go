package config

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		in      string
		want    Network
		wantErr bool
	}{
		{"mainnet", Mainnet, false},
		{"Mainnet", Mainnet, false},
		{"", Mainnet, false},
		{" testnet ", Testnet, false},
		{"devnet", "", true},
	}
	for _, tc := range cases {
		cfg, err := Resolve(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Resolve(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.in, err)
			continue
		}
		if cfg.Network != tc.want {
			t.Errorf("Resolve(%q) = %s, want %s", tc.in, cfg.Network, tc.want)
		}
	}
}

func TestNetworkConfigs(t *testing.T) {
	main := ForNetwork(Mainnet)
	test := ForNetwork(Testnet)

	if main.ChainID == test.ChainID {
		t.Error("mainnet and testnet must have distinct chain ids")
	}
	for _, cfg := range []Config{main, test} {
		if cfg.RPCURL == "" || cfg.RESTURL == "" || cfg.ExplorerBase == "" {
			t.Errorf("%s: missing endpoint config: %+v", cfg.Network, cfg)
		}
		if cfg.Bech32Prefix != "inj" || cfg.ValoperPrefix != "injvaloper" {
			t.Errorf("%s: unexpected prefixes %q/%q", cfg.Network, cfg.Bech32Prefix, cfg.ValoperPrefix)
		}
	}
}

func TestExplorerTxURL(t *testing.T) {
	cfg := ForNetwork(Mainnet)
	got := cfg.ExplorerTxURL("ABCD1234")
	want := "https://explorer.injective.network/tx/ABCD1234"
	if got != want {
		t.Errorf("ExplorerTxURL = %q, want %q", got, want)
	}
}
