package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/containers/docker-cp/cmd/docker-cp/registry"
	"github.com/containers/docker-cp/cmd/docker-cp/validate"
	"github.com/containers/docker-cp/pkg/config"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/domain/entities"
	"github.com/containers/docker-cp/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const cpDescription = `Copy a single file between a container and the local filesystem.

  SOURCE and TARGET are either a local path or CONTAINER:PATH, where
  CONTAINER is a container name or ID.  Exactly one of them must name a
  container.  When TARGET is an existing directory, the file keeps its
  name; otherwise it is written into TARGET's parent directory.
`

var (
	rootCmd = &cobra.Command{
		Use:                   filepath.Base(os.Args[0]) + " [options] SOURCE TARGET",
		Short:                 "Copy a file between a container and the local filesystem",
		Long:                  cpDescription,
		Example:               "docker-cp mycontainer:/etc/hosts .\n  docker-cp ./notes.txt mycontainer:/tmp",
		SilenceUsage:          true,
		SilenceErrors:         true,
		Args:                  validate.SourceAndTarget,
		PersistentPreRunE:     persistentPreRunE,
		RunE:                  cp,
		PersistentPostRunE:    persistentPostRunE,
		Version:               version.Version.String(),
		DisableFlagsInUseLine: true,
	}
)

func init() {
	rootFlags(rootCmd, registry.CpConfig())
	rootCmd.SetVersionTemplate("docker-cp version {{.Version}}\n")
}

func Execute() {
	if err := rootCmd.ExecuteContext(registry.Context()); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
	} else if registry.GetExitCode() == registry.ExecErrorCodeGeneric {
		registry.SetExitCode(0)
	}
	os.Exit(registry.GetExitCode())
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	logrus.Debugf("Called %s.PersistentPreRunE(%s)", cmd.Name(), strings.Join(os.Args, " "))

	cfg, err := registry.LoadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
		cfg.LogLevel = cfg.Log.Level
	}
	if err := loggingHook(); err != nil {
		return err
	}
	return syslogHook()
}

func persistentPostRunE(cmd *cobra.Command, args []string) error {
	logrus.Debugf("Called %s.PersistentPostRunE(%s)", cmd.Name(), strings.Join(os.Args, " "))

	if engine := registry.ContainerEngine(); engine != nil {
		engine.Shutdown(registry.Context())
	}
	return nil
}

func cp(cmd *cobra.Command, args []string) error {
	engine, err := registry.NewContainerEngine(cmd, args)
	if err != nil {
		return err
	}
	cpArgs := entities.ContainerCpArgs{
		Source: args[0],
		Target: args[1],
	}
	// An explicitly empty --buffer-length is invalid, not unset.
	if opts := registry.CpConfig(); opts.FlagSet.Changed("buffer-length") {
		cpArgs.BufferLength = &opts.BufferLength
	}
	return engine.ContainerCp(cmd.Context(), cpArgs)
}

func loggingHook() error {
	logLevel := registry.CpConfig().LogLevel
	var found bool
	for _, l := range define.LogLevels {
		if l == strings.ToLower(logLevel) {
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("log level %q is not supported, choose from: %s", logLevel, strings.Join(define.LogLevels, ", "))
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if logrus.IsLevelEnabled(logrus.InfoLevel) {
		logrus.Infof("%s filtering at log level %s", os.Args[0], logrus.GetLevel())
	}
	return nil
}

func rootFlags(cmd *cobra.Command, opts *entities.CpConfig) {
	flags := cmd.Flags()

	flags.StringVar(&opts.BufferLength, "buffer-length", "", "Buffer size in bytes for reading from the container (default from configuration, 2 MiB)")
	flags.StringVar(&opts.ConfigPath, "config", "", fmt.Sprintf("Path to a configuration file (%s)", config.ConfigEnv))
	flags.StringVarP(&opts.URI, "host", "H", "", fmt.Sprintf("Container engine socket to connect to (%s)", config.HostEnv))
	flags.StringVar(&opts.LogLevel, "log-level", define.DefaultLogLevel, fmt.Sprintf("Log messages above specified level (%s)", strings.Join(define.LogLevels, ", ")))
	flags.BoolVar(&opts.Syslog, "syslog", false, "Output logging information to syslog as well as the console")
}

func formatError(err error) string {
	if errors.Is(err, define.ErrConnection) {
		logrus.Debugf("Connecting to the container engine: %v", err)
		return "Error: " + define.ErrConnection.Error()
	}
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return fmt.Sprintf("Error: %+v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
