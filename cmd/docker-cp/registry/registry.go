package registry

import (
	"context"
	"sync"

	"github.com/containers/docker-cp/pkg/config"
	"github.com/containers/docker-cp/pkg/domain/entities"
	"github.com/containers/docker-cp/pkg/domain/infra"
	"github.com/spf13/cobra"
)

const ExecErrorCodeGeneric = 125

var (
	cliCtx          context.Context
	containerEngine entities.ContainerEngine
	exitCode        = ExecErrorCodeGeneric

	cpOptions entities.CpConfig
	cpSync    sync.Once
	cpErr     error
)

func SetExitCode(code int) {
	exitCode = code
}

func GetExitCode() int {
	return exitCode
}

// CpConfig returns the process configuration that command line flags are
// bound to.  The configuration files are only read by LoadConfig.
func CpConfig() *entities.CpConfig {
	return &cpOptions
}

// LoadConfig reads the configuration files once, honoring --config.
func LoadConfig() (*entities.CpConfig, error) {
	cpSync.Do(func() {
		cfg, err := config.New(cpOptions.ConfigPath)
		if err != nil {
			cpErr = err
			return
		}
		cpOptions.Config = cfg
	})
	return &cpOptions, cpErr
}

func ContainerEngine() entities.ContainerEngine {
	return containerEngine
}

// NewContainerEngine is a wrapper for building a ContainerEngine to be used
// by RunE functions.
func NewContainerEngine(cmd *cobra.Command, _ []string) (entities.ContainerEngine, error) {
	if containerEngine == nil {
		opts, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		opts.FlagSet = cmd.Flags()
		engine, err := infra.NewContainerEngine(opts)
		if err != nil {
			return nil, err
		}
		containerEngine = engine
	}
	return containerEngine, nil
}

// Context returns the process-wide context commands run with.
func Context() context.Context {
	if cliCtx == nil {
		cliCtx = context.Background()
	}
	return cliCtx
}
