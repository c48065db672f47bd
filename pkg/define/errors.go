package define

import (
	"errors"
)

var (
	// ErrConnection indicates the container engine could not be reached.
	ErrConnection = errors.New("Could not connect to Docker")

	// ErrNoSuchCtr indicates the requested container does not exist.
	ErrNoSuchCtr = errors.New("no such container")

	// ErrNoSuchPath indicates the requested path does not exist inside the
	// container.
	ErrNoSuchPath = errors.New("no such file or directory in container")

	// ErrUnsupported indicates a copy where both endpoints name a container.
	ErrUnsupported = errors.New("Copying between containers is not supported")

	// ErrNoContainer indicates a copy where neither endpoint names a
	// container.
	ErrNoContainer = errors.New("At least one container must be specified")

	// ErrInvalidDestination indicates the host side of a copy out of a
	// container does not resolve to an existing directory.
	ErrInvalidDestination = errors.New("Invalid output path")

	// ErrInvalidSource indicates the host side of a copy into a container
	// is not a readable regular file.
	ErrInvalidSource = errors.New("Invalid source file")

	// ErrCorruptArchive indicates the archive returned by the engine could
	// not be decoded or did not carry the expected file.
	ErrCorruptArchive = errors.New("corrupt archive")

	// ErrIO indicates a local read or write failed.
	ErrIO = errors.New("input/output error")

	// ErrAPI indicates the engine reported a failure that has no more
	// specific kind.
	ErrAPI = errors.New("container engine error")
)

// ValidationError is returned when a command line value does not satisfy
// its constraint.  Its message is shown to the user as is.
type ValidationError struct {
	// Field is the name of the offending argument or flag.
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// kindError attaches a sentinel kind to an error without changing the
// error's message.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Kind tags err as being of the given kind, so that errors.Is(result, kind)
// holds, while keeping err's message verbatim.  A nil err stays nil.
func Kind(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &kindError{kind: kind, err: err}
}
