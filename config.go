package featmatrix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	shlex "github.com/anmitsu/go-shlex"
	"gopkg.in/yaml.v3"
)

// ErrEmptyCommand is returned when a config does not name a command to run.
var ErrEmptyCommand = errors.New("empty command")

// Config describes a matrix run: the command template and the feature groups.
type Config struct {
	// Command is split with POSIX shell rules. The joined feature string
	// is appended as the final argument.
	Command string `toml:"command" yaml:"command" json:"command"`
	// Groups lists the declared tokens of each feature group, in order.
	Groups [][]string `toml:"groups" yaml:"groups" json:"groups"`
}

// DefaultConfig returns the built-in matrix: the optional cargo features
// of the vapoursynth crate, tested with `cargo test --verbose --features`.
func DefaultConfig() Config {
	return Config{
		Command: "cargo test --verbose --features",
		Groups: [][]string{
			{"vapoursynth-functions"},
			{"vsscript-functions"},
			{"f16-pixel-type"},
		},
	}
}

// Matrix builds the immutable [Matrix] for the configured groups.
func (c Config) Matrix() *Matrix {
	groups := make([]FeatureGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, FeatureGroup(g))
	}
	return NewMatrix(groups...)
}

// ParseCommand splits the command string into a [Command].
func (c Config) ParseCommand() (Command, error) {
	words, err := shlex.Split(c.Command, true)
	if err != nil {
		return Command{}, fmt.Errorf("parse command %q: %w", c.Command, err)
	}
	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: words[0], Args: words[1:]}, nil
}

// LoadConfig reads a config file. The format is chosen by extension:
// .toml, .yaml, or .yml.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %q: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("load config %q: unsupported format %q (want .toml, .yaml, or .yml)", path, ext)
	}

	if strings.TrimSpace(cfg.Command) == "" {
		return Config{}, fmt.Errorf("load config %q: %w", path, ErrEmptyCommand)
	}
	return cfg, nil
}
