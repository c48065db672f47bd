package copy

import (
	"testing"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func validArgs() entities.ContainerCpArgs {
	return entities.ContainerCpArgs{
		Source:       "test:/proc/version",
		Target:       ".",
		BufferLength: stringPtr("4"),
	}
}

func TestValidateArgs(t *testing.T) {
	opts, err := ValidateArgs(validArgs(), define.DefaultBufferLength)
	require.NoError(t, err)
	assert.Equal(t, entities.ContainerCpOptions{Source: "test:/proc/version", Target: ".", BufferLength: 4}, opts)
}

func TestValidateArgsDefaultBufferLength(t *testing.T) {
	args := validArgs()
	args.BufferLength = nil

	opts, err := ValidateArgs(args, 8192)
	require.NoError(t, err)
	assert.Equal(t, 8192, opts.BufferLength)

	opts, err = ValidateArgs(args, 0)
	require.NoError(t, err)
	assert.Equal(t, define.DefaultBufferLength, opts.BufferLength)
}

func TestValidateArgsErrors(t *testing.T) {
	for _, tc := range []struct {
		name     string
		modify   func(*entities.ContainerCpArgs)
		field    string
		expected string
	}{
		{"fractional buffer length", func(a *entities.ContainerCpArgs) { a.BufferLength = stringPtr("4.5") }, "--buffer-length", "Buffer length must be an integer greater than 0"},
		{"zero buffer length", func(a *entities.ContainerCpArgs) { a.BufferLength = stringPtr("0") }, "--buffer-length", "Buffer length must be an integer greater than 0"},
		{"negative buffer length", func(a *entities.ContainerCpArgs) { a.BufferLength = stringPtr("-1") }, "--buffer-length", "Buffer length must be an integer greater than 0"},
		{"empty buffer length", func(a *entities.ContainerCpArgs) { a.BufferLength = stringPtr("") }, "--buffer-length", "Buffer length must be an integer greater than 0"},
		{"non numeric buffer length", func(a *entities.ContainerCpArgs) { a.BufferLength = stringPtr("lots") }, "--buffer-length", "Buffer length must be an integer greater than 0"},
		{"empty source", func(a *entities.ContainerCpArgs) { a.Source = "" }, "FILE", "Invalid input file"},
		{"empty target", func(a *entities.ContainerCpArgs) { a.Target = "" }, "TARGET", "Invalid destination directory"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			args := validArgs()
			tc.modify(&args)

			_, err := ValidateArgs(args, define.DefaultBufferLength)
			require.Error(t, err)
			assert.EqualError(t, err, tc.expected)

			var verr *define.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestParseBufferLength(t *testing.T) {
	n, err := ParseBufferLength("4")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = ParseBufferLength("2097152")
	require.NoError(t, err)
	assert.Equal(t, 2097152, n)

	for _, bad := range []string{"", "4.5", "0", "-1", "1e3", " 4"} {
		_, err := ParseBufferLength(bad)
		assert.Error(t, err, bad)
	}
}
