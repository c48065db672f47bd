// Package bindings connects docker-cp to a container engine.  The copy
// logic only sees the Client, Container and ArchiveStream interfaces; the
// implementation returned by NewConnection talks to a Docker compatible
// API (Docker or the Podman service).
package bindings

import (
	"context"
	"io"

	"github.com/containers/docker-cp/pkg/define"
)

// Client is a connection to a container engine.
type Client interface {
	// Container looks up a container by name or ID.  A missing container
	// is reported as define.ErrNoSuchCtr.
	Container(ctx context.Context, nameOrID string) (Container, error)
	Close() error
}

// Container is a handle on an existing container.
type Container interface {
	ID() string
	Name() string
	// FetchArchive returns a tar archive of the file at path, delivered in
	// chunks of at most chunkSize bytes, and the metadata the engine
	// reports for that file.
	FetchArchive(ctx context.Context, path string, chunkSize int) (ArchiveStream, define.ArchiveEntry, error)
	// PutArchive extracts the tar archive read from archive into the
	// directory path.
	PutArchive(ctx context.Context, path string, archive io.Reader) error
}

// ArchiveStream is a finite sequence of archive chunks.  It cannot be
// rewound; fetch the archive again to start over.
type ArchiveStream interface {
	// Next returns the next chunk, or io.EOF after the last one.  The
	// returned slice is only valid until the following call.
	Next() ([]byte, error)
	Close() error
}
