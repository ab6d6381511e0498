// Package yaml loads configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/ldcurate"
	"gopkg.in/yaml.v3"
)

// Loader reads ldcurate configuration files.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader { return &Loader{} }

// Load reads the config at path over DefaultConfig, so a file only needs
// the values it changes. A missing file or an empty path yields the
// defaults. Unknown keys and invalid values are EINVALID.
func (l *Loader) Load(path string) (ldcurate.Config, error) {
	cfg := ldcurate.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return ldcurate.Config{}, err
	}

	if err := Decode(data, &cfg); err != nil {
		return ldcurate.Config{}, ldcurate.Errorf(ldcurate.EINVALID, "parsing %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return ldcurate.Config{}, ldcurate.Errorf(ldcurate.EINVALID, "invalid %s: %s", path, ldcurate.ErrorMessage(err))
	}
	return cfg, nil
}

// Decode overlays YAML data on cfg. Durations accept Go syntax ("15s").
func Decode(data []byte, cfg *ldcurate.Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
