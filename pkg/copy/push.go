package copy

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/containers/docker-cp/pkg/errorhandling"
	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
)

// Push copies the host file source into the directory destination inside
// ctr.  The file keeps its base name, permission bits and modification
// time.
func Push(ctx context.Context, ctr bindings.Container, source, destination string) error {
	f, err := os.Open(source)
	if err != nil {
		logrus.Debugf("Opening source %q: %v", source, err)
		return define.ErrInvalidSource
	}
	defer errorhandling.CloseQuiet(source, f)

	info, err := f.Stat()
	if err != nil {
		logrus.Debugf("Stat of source %q: %v", source, err)
		return define.ErrInvalidSource
	}
	if !info.Mode().IsRegular() {
		logrus.Debugf("Source %q is not a regular file (%s)", source, info.Mode().Type())
		return define.ErrInvalidSource
	}

	entry := define.ArchiveEntry{
		Name:  filepath.Base(source),
		Size:  info.Size(),
		Mode:  define.PosixMode(info.Mode()),
		Mtime: info.ModTime().Unix(),
	}

	var buf bytes.Buffer
	if err := EncodeArchive(&buf, entry, f); err != nil {
		logrus.Debugf("Archiving source %q: %v", source, err)
		return define.ErrInvalidSource
	}

	logrus.Debugf("Container copy *to* %q on container %q (ID: %s): %s archive of %q", destination, ctr.Name(), ctr.ID(), units.HumanSize(float64(buf.Len())), source)
	return ctr.PutArchive(ctx, destination, &buf)
}
