// Package bindingstest provides in-memory container engines for tests: a
// FakeClient implementing bindings.Client directly, and a Server that
// serves the same containers over the Docker archive API.
package bindingstest

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"path"
	"sync"

	"github.com/containers/docker-cp/pkg/bindings"
	"github.com/containers/docker-cp/pkg/define"
	"github.com/pkg/errors"
)

// File is a regular file stored inside a fake container.
type File struct {
	Entry define.ArchiveEntry
	Data  []byte
}

// Fetch records one FetchArchive call.
type Fetch struct {
	Path      string
	ChunkSize int
}

// Put records one PutArchive call.
type Put struct {
	Path    string
	Archive []byte
}

// FakeContainer keeps its files in memory, keyed by absolute path.
type FakeContainer struct {
	mu   sync.Mutex
	id   string
	name string

	Files map[string]File
	// Archives, when set for a path, is served verbatim by FetchArchive
	// instead of an archive built from Files.
	Archives map[string][]byte
	Fetches  []Fetch
	Puts     []Put
	// Closes counts the archive streams returned by FetchArchive that have
	// been closed.
	Closes int

	// FetchErr and PutErr, when set, are returned by the respective call.
	FetchErr error
	PutErr   error
}

// NewFakeContainer returns an empty container.
func NewFakeContainer(id, name string) *FakeContainer {
	return &FakeContainer{
		id:       id,
		name:     name,
		Files:    make(map[string]File),
		Archives: make(map[string][]byte),
	}
}

func (c *FakeContainer) ID() string {
	return c.id
}

func (c *FakeContainer) Name() string {
	return c.name
}

// AddFile stores data at p with the given mode and modification time.
func (c *FakeContainer) AddFile(p string, data []byte, mode uint32, mtime int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Files[path.Clean(p)] = File{
		Entry: define.ArchiveEntry{Name: path.Base(p), Size: int64(len(data)), Mode: mode, Mtime: mtime},
		Data:  data,
	}
}

// File returns the file stored at p.
func (c *FakeContainer) File(p string) (File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.Files[path.Clean(p)]
	return f, ok
}

// Stat returns the entry for p and the archive FetchArchive would serve.
func (c *FakeContainer) Stat(p string) ([]byte, define.ArchiveEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p = path.Clean(p)
	f, ok := c.Files[p]
	if archive, found := c.Archives[p]; found {
		return archive, f.Entry, nil
	}
	if !ok {
		return nil, define.ArchiveEntry{}, define.Kind(define.ErrNoSuchPath, errors.Errorf("Could not find the file %s in container %s", p, c.name))
	}
	archive, err := archiveOf(f)
	return archive, f.Entry, err
}

func (c *FakeContainer) FetchArchive(_ context.Context, p string, chunkSize int) (bindings.ArchiveStream, define.ArchiveEntry, error) {
	c.mu.Lock()
	c.Fetches = append(c.Fetches, Fetch{Path: p, ChunkSize: chunkSize})
	fetchErr := c.FetchErr
	c.mu.Unlock()
	if fetchErr != nil {
		return nil, define.ArchiveEntry{}, fetchErr
	}

	archive, entry, err := c.Stat(p)
	if err != nil {
		return nil, define.ArchiveEntry{}, err
	}
	stream, err := bindings.NewArchiveStream(&trackedReader{Reader: bytes.NewReader(archive), ctr: c}, chunkSize)
	if err != nil {
		return nil, define.ArchiveEntry{}, err
	}
	return stream, entry, nil
}

// trackedReader counts its Close calls on the container that served it.
type trackedReader struct {
	io.Reader
	ctr *FakeContainer
}

func (r *trackedReader) Close() error {
	r.ctr.mu.Lock()
	defer r.ctr.mu.Unlock()
	r.ctr.Closes++
	return nil
}

func (c *FakeContainer) PutArchive(_ context.Context, p string, archive io.Reader) error {
	data, err := io.ReadAll(archive)
	if err != nil {
		return errors.Wrap(err, "reading archive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.Puts = append(c.Puts, Put{Path: p, Archive: data})
	if c.PutErr != nil {
		return c.PutErr
	}

	tr := tar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return define.Kind(define.ErrAPI, errors.Wrap(err, "extracting archive"))
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return define.Kind(define.ErrAPI, errors.Wrap(err, "extracting archive"))
		}
		target := path.Join(path.Clean(p), hdr.Name)
		c.Files[target] = File{
			Entry: define.ArchiveEntry{
				Name:  path.Base(target),
				Size:  hdr.Size,
				Mode:  uint32(hdr.Mode) & 0o7777,
				Mtime: hdr.ModTime.Unix(),
			},
			Data: content,
		}
	}
}

func archiveOf(f File) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     f.Entry.Name,
		Size:     int64(len(f.Data)),
		Mode:     int64(f.Entry.Mode),
		ModTime:  f.Entry.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return nil, err
	}
	if _, err := tw.Write(f.Data); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FakeClient is a bindings.Client over a set of FakeContainers.
type FakeClient struct {
	mu         sync.Mutex
	containers []*FakeContainer

	// Lookups lists every name or ID passed to Container.
	Lookups []string
	// LookupErr, when set, is returned by every lookup.
	LookupErr error
	Closed    bool
}

// NewFakeClient returns a client holding the given containers.
func NewFakeClient(containers ...*FakeContainer) *FakeClient {
	return &FakeClient{containers: containers}
}

// Lookup finds a container by name or ID without recording the call.
func (c *FakeClient) Lookup(nameOrID string) (*FakeContainer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ctr := range c.containers {
		if ctr.id == nameOrID || ctr.name == nameOrID {
			return ctr, true
		}
	}
	return nil, false
}

func (c *FakeClient) Container(_ context.Context, nameOrID string) (bindings.Container, error) {
	c.mu.Lock()
	c.Lookups = append(c.Lookups, nameOrID)
	lookupErr := c.LookupErr
	c.mu.Unlock()
	if lookupErr != nil {
		return nil, lookupErr
	}
	ctr, ok := c.Lookup(nameOrID)
	if !ok {
		return nil, define.Kind(define.ErrNoSuchCtr, errors.Errorf("No such container: %s", nameOrID))
	}
	return ctr, nil
}

func (c *FakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}
