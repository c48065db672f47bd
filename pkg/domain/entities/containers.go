package entities

// ContainerCpArgs holds the raw command line values for cp, before
// validation.
type ContainerCpArgs struct {
	// Source is the SOURCE argument, "[container:]path".
	Source string
	// Target is the TARGET argument, "[container:]path".
	Target string
	// BufferLength is the --buffer-length value as typed, nil when the flag
	// was not given.
	BufferLength *string
}

// ContainerCpOptions describes validated input options for cp.
type ContainerCpOptions struct {
	Source string
	Target string
	// BufferLength is the chunk size in bytes used when streaming an
	// archive out of a container.
	BufferLength int
}
