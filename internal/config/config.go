package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/uciwire/uciwire/pkg/errors"
)

// TrafficLogging configures the optional tee of relayed traffic to a file.
// It is a client-side concern; the server never tees traffic.
type TrafficLogging struct {
	Enabled bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Path    string `json:"path" toml:"path" yaml:"path"`
}

// Client is the configuration for the terminal side of the relay.
type Client struct {
	Address  string         `json:"address" toml:"address" yaml:"address"`
	Logging  TrafficLogging `json:"logging" toml:"logging" yaml:"logging"`
	LogLevel string         `json:"log_level" toml:"log_level" yaml:"log_level"`
}

// Server is the configuration for the engine side of the relay.
type Server struct {
	ExecutablePath string `json:"executable_path" toml:"executable_path" yaml:"executable_path"`
	BindAddress    string `json:"bind_address" toml:"bind_address" yaml:"bind_address"`
	LogLevel       string `json:"log_level" toml:"log_level" yaml:"log_level"`
}

func LoadClient(path string) (Client, error) {
	var cfg Client

	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Address == "" {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, "address is required", nil)
	}
	if cfg.Logging.Enabled && cfg.Logging.Path == "" {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, "logging.path is required when logging is enabled", nil)
	}

	return cfg, nil
}

func LoadServer(path string) (Server, error) {
	var cfg Server

	if err := decodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if cfg.ExecutablePath == "" {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, "executable_path is required", nil)
	}
	if cfg.BindAddress == "" {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, "bind_address is required", nil)
	}

	return cfg, nil
}

// decodeFile picks the decoder from the file extension. JSON is the
// historical format; TOML and YAML are accepted as well.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrConfigLoad, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return errors.WrapWithBase(errors.ErrConfigLoad,
			fmt.Sprintf("unsupported config format %q", filepath.Ext(path)), nil)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrConfigLoad, err)
	}
	return nil
}
