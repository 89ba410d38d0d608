package driver

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"risp/internal/project"
)

// DiskCache stores one msgpack file per content key under
// <dir>/mods/<first two hex digits>/<rest>.mp. Writes go through a temp
// file and a rename, so readers never see a partial entry and no lock is
// needed across workers or processes.
type DiskCache struct {
	dir string
}

// OpenDiskCache uses <user cache dir>/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache creates dir if it is missing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) modsDir() string { return filepath.Join(c.dir, "mods") }

func (c *DiskCache) entryPath(key project.Digest) string {
	h := hex.EncodeToString(key[:])
	return filepath.Join(c.modsDir(), h[:2], h[2:]+".mp")
}

// Put writes payload under key, replacing any previous entry.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	dst := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".put-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get fills out from the entry for key. A missing entry, one from another
// schema or one whose recorded key differs is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.entryPath(key))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion && out.ContentHash == key, nil
}

// DropAll removes every entry. The cache stays usable afterwards.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	if err := os.RemoveAll(c.modsDir()); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
