//go:build linux || freebsd

package main

import (
	"log/syslog"

	"github.com/containers/docker-cp/cmd/docker-cp/registry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	lsyslog "github.com/sirupsen/logrus/hooks/syslog"
)

func syslogHook() error {
	if !registry.CpConfig().Syslog {
		return nil
	}

	hook, err := lsyslog.NewSyslogHook("", "", syslog.LOG_INFO, "")
	if err != nil {
		return errors.Wrap(err, "connecting to syslog")
	}
	logrus.AddHook(hook)
	return nil
}
