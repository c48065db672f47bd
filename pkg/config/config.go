// Package config reads the docker-cp configuration file.
//
// The file is TOML:
//
//	[engine]
//	host = "unix:///var/run/docker.sock"
//
//	[copy]
//	buffer_length = "2MiB"
//
//	[log]
//	level = "warn"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/containers/docker-cp/pkg/define"
	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// ConfigEnv names the environment variable pointing at a configuration
	// file that replaces the system and user ones.
	ConfigEnv = "DOCKER_CP_CONF"
	// HostEnv overrides the engine host of the configuration files, as in
	// podman.  DOCKER_HOST is honored by the engine client itself.
	HostEnv = "CONTAINER_HOST"

	configFileName = "docker-cp.conf"
)

// systemConfigPath is read before the user configuration file.
var systemConfigPath = filepath.Join("/etc", "docker-cp", configFileName)

// Config holds the settings read from the configuration files.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Copy   CopyConfig   `toml:"copy"`
	Log    LogConfig    `toml:"log"`
}

// EngineConfig selects the container engine.
type EngineConfig struct {
	// Host is the engine URI, e.g. unix:///run/podman/podman.sock.
	Host string `toml:"host,omitempty"`
}

// CopyConfig tunes transfers.
type CopyConfig struct {
	// BufferLength is the default chunk size for archives streamed out of
	// a container, in go-units notation ("65536", "64KiB", "2MiB").
	BufferLength string `toml:"buffer_length,omitempty"`
}

// LogConfig tunes logging.
type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Copy: CopyConfig{BufferLength: units.BytesSize(define.DefaultBufferLength)},
		Log:  LogConfig{Level: define.DefaultLogLevel},
	}
}

// UserConfigPath returns the per-user configuration file path.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docker-cp", configFileName), nil
}

// New builds the configuration.  When path is set, or $DOCKER_CP_CONF is,
// only that file is read and it must exist.  Otherwise the system file and
// then the user file are read if present, the latter overriding the
// former.  $CONTAINER_HOST finally overrides the engine host.
func New(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	} else {
		paths := []string{systemConfigPath}
		if user, err := UserConfigPath(); err == nil {
			paths = append(paths, user)
		} else {
			logrus.Debugf("No user configuration directory: %v", err)
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err != nil {
				if !os.IsNotExist(err) {
					return nil, errors.Wrapf(err, "checking configuration file %s", p)
				}
				continue
			}
			if err := cfg.readFile(p); err != nil {
				return nil, err
			}
		}
	}

	if host, found := os.LookupEnv(HostEnv); found && host != "" {
		cfg.Engine.Host = host
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	logrus.Debugf("Reading configuration file %q", path)
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "decoding configuration file %s", path)
	}
	for _, key := range meta.Undecoded() {
		logrus.Warnf("Unknown key %q in configuration file %s", key.String(), path)
	}
	return nil
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	if _, err := c.BufferLength(); err != nil {
		return err
	}
	return nil
}

// BufferLength returns the configured chunk size in bytes.
func (c *Config) BufferLength() (int, error) {
	if c.Copy.BufferLength == "" {
		return define.DefaultBufferLength, nil
	}
	n, err := units.RAMInBytes(c.Copy.BufferLength)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid buffer_length %q", c.Copy.BufferLength)
	}
	if n <= 0 || int64(int(n)) != n {
		return 0, errors.Errorf("invalid buffer_length %q: must be greater than 0", c.Copy.BufferLength)
	}
	return int(n), nil
}
