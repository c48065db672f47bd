package copy

import (
	"github.com/containers/docker-cp/pkg/define"
)

// ResolveDirection derives the copy direction from the two endpoints.  The
// source contributes "from" when it names a container and the destination
// contributes "to" when it does.
func ResolveDirection(source, destination Endpoint) define.Direction {
	from, to := false, false
	if source.IsContainer() {
		from = true
	}
	if destination.IsContainer() {
		to = true
	}
	return define.DirectionOf(from, to)
}
