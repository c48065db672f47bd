//go:build !linux && !freebsd

package main

import (
	"runtime"

	"github.com/containers/docker-cp/cmd/docker-cp/registry"
	"github.com/pkg/errors"
)

func syslogHook() error {
	if !registry.CpConfig().Syslog {
		return nil
	}
	return errors.Errorf("logging to syslog is not supported on %s", runtime.GOOS)
}
