package bindings

import (
	"context"
	"io"

	"github.com/containers/docker-cp/pkg/define"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/sirupsen/logrus"
)

type dockerContainer struct {
	cli  *client.Client
	id   string
	name string
}

func (c *dockerContainer) ID() string {
	return c.id
}

func (c *dockerContainer) Name() string {
	return c.name
}

func (c *dockerContainer) FetchArchive(ctx context.Context, path string, chunkSize int) (ArchiveStream, define.ArchiveEntry, error) {
	rc, stat, err := c.cli.CopyFromContainer(ctx, c.id, path)
	if err != nil {
		return nil, define.ArchiveEntry{}, classifyError(err, define.ErrNoSuchPath)
	}
	stream, err := NewArchiveStream(rc, chunkSize)
	if err != nil {
		rc.Close()
		return nil, define.ArchiveEntry{}, err
	}
	logrus.Debugf("Engine reports %q: name %q, size %d, mode %s", path, stat.Name, stat.Size, stat.Mode)
	return stream, define.ArchiveEntry{
		Name:  stat.Name,
		Size:  stat.Size,
		Mode:  define.PosixMode(stat.Mode),
		Mtime: stat.Mtime.Unix(),
	}, nil
}

func (c *dockerContainer) PutArchive(ctx context.Context, path string, archive io.Reader) error {
	err := c.cli.CopyToContainer(ctx, c.id, path, archive, types.CopyToContainerOptions{})
	return classifyError(err, define.ErrNoSuchPath)
}
