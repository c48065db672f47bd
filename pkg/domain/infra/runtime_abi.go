package infra

import (
	"context"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/domain/entities"
	"github.com/containers/docker-cp/pkg/domain/infra/abi"
	"github.com/sirupsen/logrus"
)

// NewContainerEngine builds the container engine from the process
// configuration.  --host wins over the configuration files and
// $CONTAINER_HOST; when neither sets a host the engine client falls back
// to $DOCKER_HOST and the default socket.
func NewContainerEngine(cfg *entities.CpConfig) (entities.ContainerEngine, error) {
	uri := cfg.URI
	if uri == "" && cfg.Config != nil {
		uri = cfg.Engine.Host
	}

	bufferLength := 0
	if cfg.Config != nil {
		n, err := cfg.Config.BufferLength()
		if err != nil {
			return nil, err
		}
		bufferLength = n
	}

	logrus.Debugf("Using container engine %q, default buffer length %d", uri, bufferLength)
	connect := func(ctx context.Context) (bindings.Client, error) {
		return bindings.NewConnection(ctx, uri)
	}
	return abi.NewContainerEngine(connect, bufferLength), nil
}
