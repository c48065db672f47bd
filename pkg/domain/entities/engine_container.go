package entities

import (
	"context"
)

// ContainerEngine runs copies against a container engine.
type ContainerEngine interface {
	// ContainerCp copies a single file between the host and a container.
	ContainerCp(ctx context.Context, args ContainerCpArgs) error
	// Shutdown releases the engine connection, if one was opened.
	Shutdown(ctx context.Context)
}
