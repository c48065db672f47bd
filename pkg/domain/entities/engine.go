package entities

import (
	"github.com/containers/docker-cp/pkg/config"
	"github.com/spf13/pflag"
)

// CpConfig is the process-wide configuration, built from the
// configuration file, the environment and the command line.
type CpConfig struct {
	*config.Config
	FlagSet *pflag.FlagSet

	// ConfigPath is the configuration file requested with --config.
	ConfigPath string
	// URI of the container engine (--host).
	URI      string
	LogLevel string
	Syslog   bool
	// BufferLength is the raw --buffer-length value.
	BufferLength string
}
