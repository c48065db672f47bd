package copy

import (
	"strconv"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/domain/entities"
)

type constraint struct {
	field string
	msg   string
	check func(entities.ContainerCpArgs) bool
}

// cpConstraints is checked in order; the first failing entry is reported.
var cpConstraints = []constraint{
	{
		field: "FILE",
		msg:   "Invalid input file",
		check: func(a entities.ContainerCpArgs) bool { return len(a.Source) > 0 },
	},
	{
		field: "TARGET",
		msg:   "Invalid destination directory",
		check: func(a entities.ContainerCpArgs) bool { return len(a.Target) > 0 },
	},
	{
		field: "--buffer-length",
		msg:   "Buffer length must be an integer greater than 0",
		check: func(a entities.ContainerCpArgs) bool {
			if a.BufferLength == nil {
				return true
			}
			_, err := ParseBufferLength(*a.BufferLength)
			return err == nil
		},
	},
}

// ParseBufferLength parses a transfer buffer size in bytes.  Only positive
// base-10 integers are accepted.
func ParseBufferLength(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &define.ValidationError{Field: "--buffer-length", Msg: "Buffer length must be an integer greater than 0"}
	}
	return n, nil
}

// ValidateArgs checks the raw command line values and converts them into
// the options used for the copy.  When no buffer length is given,
// defaultBufferLength is used.
func ValidateArgs(args entities.ContainerCpArgs, defaultBufferLength int) (entities.ContainerCpOptions, error) {
	for _, c := range cpConstraints {
		if !c.check(args) {
			return entities.ContainerCpOptions{}, &define.ValidationError{Field: c.field, Msg: c.msg}
		}
	}

	bufferLength := defaultBufferLength
	if args.BufferLength != nil {
		n, err := ParseBufferLength(*args.BufferLength)
		if err != nil {
			return entities.ContainerCpOptions{}, err
		}
		bufferLength = n
	}
	if bufferLength <= 0 {
		bufferLength = define.DefaultBufferLength
	}
	return entities.ContainerCpOptions{
		Source:       args.Source,
		Target:       args.Target,
		BufferLength: bufferLength,
	}, nil
}
