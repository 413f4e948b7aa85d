// Package files persists operator preferences across console invocations
// so flags like --network and --validator do not have to be repeated.
package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Prefs are the stored operator preferences. Zero values mean "not set";
// flags and environment always win over stored values.
type Prefs struct {
	Network          string `yaml:"network,omitempty"`
	RPCURL           string `yaml:"rpc_url,omitempty"`
	RESTURL          string `yaml:"rest_url,omitempty"`
	ValidatorAddress string `yaml:"validator_address,omitempty"`
	KeyIndex         uint32 `yaml:"key_index,omitempty"`
}

// Store reads and writes preferences at a fixed path.
type Store interface {
	Load() (Prefs, error)
	Save(Prefs) error
	Path() string
}

type store struct{ path string }

// New returns a store rooted at dir (typically ~/.validator-console).
func New(dir string) Store {
	return &store{path: filepath.Join(dir, "config.yaml")}
}

// DefaultDir resolves the per-user preferences directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".validator-console"
	}
	return filepath.Join(home, ".validator-console")
}

func (s *store) Path() string { return s.path }

// Load reads stored preferences. A missing file reads as empty prefs.
func (s *store) Load() (Prefs, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("read preferences: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return p, nil
}

// Save writes preferences, creating the directory on first use.
func (s *store) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return os.WriteFile(s.path, b, 0o600)
}
