package bindings

import (
	"github.com/containers/docker-cp/pkg/define"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
)

// classifyError tags an error returned by the Docker client with the
// matching define kind, keeping the engine's message.  notFound is the kind
// used for a 404: a missing container on lookup, a missing path on copy.
func classifyError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch {
	case errdefs.IsNotFound(err):
		return define.Kind(notFound, err)
	case client.IsErrConnectionFailed(err):
		return define.Kind(define.ErrConnection, err)
	default:
		return define.Kind(define.ErrAPI, err)
	}
}
