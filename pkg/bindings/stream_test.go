package bindings

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestArchiveStreamChunks(t *testing.T) {
	for _, tc := range []struct {
		name      string
		input     string
		chunkSize int
		expected  []string
	}{
		{
			name:      "empty input",
			input:     "",
			chunkSize: 4,
		},
		{
			name:      "exact multiple",
			input:     "abcdefgh",
			chunkSize: 4,
			expected:  []string{"abcd", "efgh"},
		},
		{
			name:      "short last chunk",
			input:     "abcdefghij",
			chunkSize: 4,
			expected:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:      "chunk larger than input",
			input:     "abc",
			chunkSize: 2 * 1024 * 1024,
			expected:  []string{"abc"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stream, err := NewArchiveStream(io.NopCloser(bytes.NewBufferString(tc.input)), tc.chunkSize)
			require.NoError(t, err)

			var chunks []string
			for {
				chunk, err := stream.Next()
				if err == io.EOF {
					break
				}
				require.NoError(t, err)
				chunks = append(chunks, string(chunk))
			}
			assert.Equal(t, tc.expected, chunks)

			// The stream stays exhausted.
			_, err = stream.Next()
			assert.Equal(t, io.EOF, err)
			assert.NoError(t, stream.Close())
		})
	}
}

func TestArchiveStreamInvalidChunkSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewArchiveStream(io.NopCloser(bytes.NewReader(nil)), size)
		assert.Error(t, err)
	}
}

func TestArchiveStreamReadError(t *testing.T) {
	stream, err := NewArchiveStream(io.NopCloser(failingReader{}), 8)
	require.NoError(t, err)
	_, err = stream.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
