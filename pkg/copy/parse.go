package copy

import (
	"os"
	"strings"
)

// Endpoint is one side of a copy: an optional container name or ID and a
// path, which is inside the container when Container is set and on the
// host otherwise.
type Endpoint struct {
	Container string
	Path      string
}

// IsContainer returns true if the endpoint refers to a container.
func (e Endpoint) IsContainer() bool {
	return len(e.Container) > 0
}

// ParseUserInput parses the input string and returns, if specified, the
// name or ID of the container and the path.  The input format is
// "[nameOrID:]path".  Existing host directories are never treated as
// container-qualified, and colons in paths are supported as long as the
// text before the first colon starts with a dot.
func ParseUserInput(input string) Endpoint {
	ep := Endpoint{Path: input}
	if len(input) == 0 {
		return ep
	}

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return ep
	}

	spl := strings.SplitN(input, ":", 2)
	if len(spl) != 2 || strings.HasPrefix(spl[0], ".") {
		return ep
	}
	ep.Container = spl[0]
	ep.Path = spl[1]
	return ep
}

// ParseSourceAndDestination parses the source and destination input into a
// possibly specified container and path each.
func ParseSourceAndDestination(source, destination string) (Endpoint, Endpoint) {
	return ParseUserInput(source), ParseUserInput(destination)
}
