package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// defaultConfigYaml is written out the first time gridql runs with no
// config file present.
const defaultConfigYaml = `# gridql configuration. See spec.md section 6.3 for the full list of
# recognized options; anything else belongs to the host, not this file.
display:
  compact_mode: false
  show_row_numbers: true
behavior:
  case_insensitive_default: true
  max_display_rows: 1000000
  auto_execute_on_load: true
`

// Path returns the location of the gridql config file under the
// platform's XDG config directory.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("gridql", "config.yaml"))
}

// LoadOrCreate reads the config file at path, creating it with
// DefaultConfig's values (commented) the first time it's missing.
func LoadOrCreate(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeDefault(path); werr != nil {
			return Config{}, errors.Wrapf(werr, "writing default config to %q", path)
		}
		data = []byte(defaultConfigYaml)
	} else if err != nil {
		return Config{}, errors.Wrapf(err, "reading config from %q", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config at %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid configuration in %q", path)
	}
	return cfg, nil
}

// writeDefault atomically writes the default config template to path,
// creating parent directories as needed.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "os.MkdirAll")
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return errors.Wrap(err, "renameio.NewPendingFile")
	}
	defer pf.Cleanup()

	if _, err := pf.Write([]byte(defaultConfigYaml)); err != nil {
		return errors.Wrap(err, "renameio write")
	}
	return pf.CloseAtomicallyReplace()
}
