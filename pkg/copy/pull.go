package copy

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/errorhandling"
	units "github.com/docker/go-units"
	"github.com/moby/sys/atomicwriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ResolveDestinationDir returns the absolute host directory a file pulled
// out of a container is written to: destination itself when it is an
// existing directory, its parent otherwise.
func ResolveDestinationDir(destination string) (string, error) {
	abs, err := filepath.Abs(destination)
	if err != nil {
		logrus.Debugf("Resolving %q: %v", destination, err)
		return "", define.ErrInvalidDestination
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return abs, nil
	}
	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logrus.Debugf("Destination directory %q does not exist", dir)
		return "", define.ErrInvalidDestination
	}
	return dir, nil
}

// Pull copies the file at source inside ctr into the host directory
// destination resolves to.  The archive is streamed in chunks of
// bufferLength bytes.
func Pull(ctx context.Context, ctr bindings.Container, source, destination string, bufferLength int) (retErr error) {
	dir, err := ResolveDestinationDir(destination)
	if err != nil {
		return err
	}

	logrus.Debugf("Container copy *from* %q on container %q (ID: %s) into %q", source, ctr.Name(), ctr.ID(), dir)

	stream, reported, err := ctr.FetchArchive(ctx, source, bufferLength)
	if err != nil {
		return err
	}
	defer errorhandling.CloseWithError("archive stream", stream, &retErr)

	// The whole archive is held in memory before decoding.  This is fine
	// for a single file but bounds the size that can be copied.
	var buf bytes.Buffer
	chunks := 0
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		buf.Write(chunk)
		chunks++
	}
	logrus.Debugf("Received %s archive in %d chunk(s) of at most %s", units.HumanSize(float64(buf.Len())), chunks, units.HumanSize(float64(bufferLength)))

	data, entry, err := DecodeArchive(&buf, reported.Name)
	if err != nil {
		return err
	}

	switch entry.Name {
	case "", ".", "..", "/":
		return errors.Wrapf(define.ErrCorruptArchive, "invalid entry name %q", entry.Name)
	}
	target := filepath.Join(dir, entry.Name)

	perm := define.FileMode(entry.Mode)
	if perm == 0 {
		perm = 0o644
	}
	if err := atomicwriter.WriteFile(target, data, perm); err != nil {
		return define.Kind(define.ErrIO, errors.Wrapf(err, "writing %s", target))
	}
	if err := os.Chmod(target, perm); err != nil {
		return define.Kind(define.ErrIO, errors.Wrapf(err, "setting mode of %s", target))
	}
	if entry.Mtime != 0 {
		mtime := entry.ModTime()
		if err := os.Chtimes(target, mtime, mtime); err != nil {
			return define.Kind(define.ErrIO, errors.Wrapf(err, "setting modification time of %s", target))
		}
	}

	logrus.Debugf("Wrote %s to %q", units.HumanSize(float64(len(data))), target)
	return nil
}
