package define

import (
	"os"
	"time"
)

// See http://pubs.opengroup.org/onlinepubs/9699919799/utilities/pax.html#tag_20_92_13_06, from archive/tar
const (
	cISUID = 0o4000 // Set uid
	cISGID = 0o2000 // Set gid
	cISVTX = 0o1000 // Save text (sticky bit)
)

// ArchiveEntry describes the single file carried in a copy archive.
type ArchiveEntry struct {
	// Name is the base name of the file inside the archive.
	Name string
	// Size of the payload in bytes.
	Size int64
	// Mode holds the POSIX permission bits.
	Mode uint32
	// Mtime is the modification time in seconds since the epoch.
	Mtime int64
}

// ModTime returns Mtime as a time.Time.
func (e ArchiveEntry) ModTime() time.Time {
	return time.Unix(e.Mtime, 0)
}

// PosixMode converts a Go file mode into POSIX permission bits, including
// the setuid, setgid and sticky bits.
func PosixMode(fm os.FileMode) uint32 {
	mode := uint32(fm.Perm())
	if fm&os.ModeSetuid != 0 {
		mode |= cISUID
	}
	if fm&os.ModeSetgid != 0 {
		mode |= cISGID
	}
	if fm&os.ModeSticky != 0 {
		mode |= cISVTX
	}
	return mode
}

// FileMode is the inverse of PosixMode.
func FileMode(mode uint32) os.FileMode {
	fm := os.FileMode(mode & 0o777)
	if mode&cISUID != 0 {
		fm |= os.ModeSetuid
	}
	if mode&cISGID != 0 {
		fm |= os.ModeSetgid
	}
	if mode&cISVTX != 0 {
		fm |= os.ModeSticky
	}
	return fm
}
