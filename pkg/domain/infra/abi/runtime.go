package abi

import (
	"context"
	"sync"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/sirupsen/logrus"
)

// ConnectFunc opens a connection to the container engine.
type ConnectFunc func(ctx context.Context) (bindings.Client, error)

// ContainerEngine is the container-related runtime.  The engine connection
// is only opened once a copy needs it.
type ContainerEngine struct {
	connect             ConnectFunc
	defaultBufferLength int

	mu     sync.Mutex
	client bindings.Client
}

// NewContainerEngine returns an engine that connects with connect.  A
// non-positive defaultBufferLength selects define.DefaultBufferLength.
func NewContainerEngine(connect ConnectFunc, defaultBufferLength int) *ContainerEngine {
	if defaultBufferLength <= 0 {
		defaultBufferLength = define.DefaultBufferLength
	}
	return &ContainerEngine{
		connect:             connect,
		defaultBufferLength: defaultBufferLength,
	}
}

func (ic *ContainerEngine) getClient(ctx context.Context) (bindings.Client, error) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.client != nil {
		return ic.client, nil
	}
	client, err := ic.connect(ctx)
	if err != nil {
		return nil, define.Kind(define.ErrConnection, err)
	}
	ic.client = client
	return client, nil
}

// Shutdown closes the engine connection.
func (ic *ContainerEngine) Shutdown(_ context.Context) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.client == nil {
		return
	}
	if err := ic.client.Close(); err != nil {
		logrus.Errorf("Closing engine connection: %v", err)
	}
	ic.client = nil
}
