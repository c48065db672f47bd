package abi

import (
	"context"
	"fmt"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/copy"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/domain/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// cpRequest is a validated and classified copy.  Each stage of ContainerCp
// produces a new value and never modifies the previous one.
type cpRequest struct {
	options     entities.ContainerCpOptions
	source      copy.Endpoint
	destination copy.Endpoint
	direction   define.Direction
}

// containerEndpoint returns the endpoint naming the container.
func (r cpRequest) containerEndpoint() copy.Endpoint {
	if r.direction == define.FromContainer {
		return r.source
	}
	return r.destination
}

// cpTransfer is a request bound to the container it copies from or to.
type cpTransfer struct {
	cpRequest
	container bindings.Container
}

func (ic *ContainerEngine) ContainerCp(ctx context.Context, args entities.ContainerCpArgs) error {
	options, err := copy.ValidateArgs(args, ic.defaultBufferLength)
	if err != nil {
		return err
	}

	req, err := classifyCp(options)
	if err != nil {
		return err
	}

	transfer, err := ic.lookupCp(ctx, req)
	if err != nil {
		return err
	}

	return transfer.run(ctx)
}

// classifyCp parses both arguments and resolves the copy direction.
// Directions that cannot be copied fail here, before the engine is
// contacted.
func classifyCp(options entities.ContainerCpOptions) (cpRequest, error) {
	source, destination := copy.ParseSourceAndDestination(options.Source, options.Target)
	req := cpRequest{
		options:     options,
		source:      source,
		destination: destination,
		direction:   copy.ResolveDirection(source, destination),
	}
	if err := req.direction.Err(); err != nil {
		return cpRequest{}, err
	}

	if len(req.containerEndpoint().Path) == 0 {
		return cpRequest{}, &define.ValidationError{
			Field: req.containerEndpoint().Container,
			Msg:   fmt.Sprintf("invalid arguments %q, %q: you must specify paths", options.Source, options.Target),
		}
	}
	return req, nil
}

// lookupCp connects to the engine and looks up the container.
func (ic *ContainerEngine) lookupCp(ctx context.Context, req cpRequest) (cpTransfer, error) {
	client, err := ic.getClient(ctx)
	if err != nil {
		return cpTransfer{}, err
	}
	ctr, err := client.Container(ctx, req.containerEndpoint().Container)
	if err != nil {
		return cpTransfer{}, err
	}
	return cpTransfer{cpRequest: req, container: ctr}, nil
}

func (t cpTransfer) run(ctx context.Context) error {
	logrus.Debugf("Copying %s container %s: %q -> %q", t.direction, t.container.ID(), t.source.Path, t.destination.Path)
	switch t.direction {
	case define.FromContainer:
		return copy.Pull(ctx, t.container, t.source.Path, t.destination.Path, t.options.BufferLength)
	case define.ToContainer:
		return copy.Push(ctx, t.container, t.source.Path, t.destination.Path)
	default:
		return errors.Wrapf(define.ErrAPI, "unexpected copy direction %s", t.direction)
	}
}
