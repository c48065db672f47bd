package copy

import (
	"archive/tar"
	"io"
	"path"
	"strings"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/moby/go-archive/compression"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EncodeArchive writes a tar archive holding exactly one regular file,
// described by entry, whose content is read from payload.  payload must
// provide entry.Size bytes.
func EncodeArchive(w io.Writer, entry define.ArchiveEntry, payload io.Reader) error {
	tw := tar.NewWriter(w)
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     entry.Name,
		Size:     entry.Size,
		Mode:     int64(entry.Mode),
		ModTime:  entry.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return errors.Wrapf(err, "writing archive header for %q", entry.Name)
	}
	n, err := io.CopyN(tw, payload, entry.Size)
	if err != nil {
		return errors.Wrapf(err, "archiving %q: wrote %d of %d bytes", entry.Name, n, entry.Size)
	}
	return errors.Wrap(tw.Close(), "finishing archive")
}

// DecodeArchive reads a possibly compressed tar archive and returns the
// content and metadata of the regular file named name at the archive root.
// An empty name selects the first regular file at the root.  Any decoding problem,
// including a missing entry, is reported as define.ErrCorruptArchive.
func DecodeArchive(r io.Reader, name string) ([]byte, define.ArchiveEntry, error) {
	decompressed, err := compression.DecompressStream(r)
	if err != nil {
		return nil, define.ArchiveEntry{}, define.Kind(define.ErrCorruptArchive, errors.Wrap(err, "decompressing archive"))
	}
	defer decompressed.Close()

	tr := tar.NewReader(decompressed)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, define.ArchiveEntry{}, define.Kind(define.ErrCorruptArchive, errors.Wrap(err, "reading archive"))
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			logrus.Debugf("Skipping archive entry %q of type %q", hdr.Name, hdr.Typeflag)
			continue
		}
		// A single-file archive holds the file at its root; nested entries
		// belong to a directory.
		base := path.Clean(strings.TrimSuffix(hdr.Name, "/"))
		if strings.Contains(base, "/") {
			logrus.Debugf("Skipping nested archive entry %q", hdr.Name)
			continue
		}
		if name != "" && base != name {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, define.ArchiveEntry{}, define.Kind(define.ErrCorruptArchive, errors.Wrapf(err, "reading %q from archive", hdr.Name))
		}
		if int64(len(data)) != hdr.Size {
			return nil, define.ArchiveEntry{}, errors.Wrapf(define.ErrCorruptArchive, "entry %q holds %d bytes, header says %d", hdr.Name, len(data), hdr.Size)
		}
		return data, define.ArchiveEntry{
			Name:  base,
			Size:  hdr.Size,
			Mode:  uint32(hdr.Mode) & 0o7777,
			Mtime: hdr.ModTime.Unix(),
		}, nil
	}

	if name == "" {
		return nil, define.ArchiveEntry{}, errors.Wrap(define.ErrCorruptArchive, "archive holds no regular file at its root")
	}
	return nil, define.ArchiveEntry{}, errors.Wrapf(define.ErrCorruptArchive, "archive has no entry %q", name)
}
