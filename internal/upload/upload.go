// Package upload persists binary attachments (task images, avatars) to a
// local content directory and serves them back as /uploads references.
package upload

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// PublicPrefix is the URL path under which stored files are served.
const PublicPrefix = "/uploads"

// FileStore writes attachments into a single flat directory. File names are
// random UUIDs with the original extension appended, so concurrent uploads
// of files with the same name cannot collide.
type FileStore struct {
	dir string
}

// New creates the content directory if needed and returns a FileStore
// rooted there.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory files are written to, for static serving.
func (f *FileStore) Dir() string { return f.dir }

// Store writes src to a new uniquely named file and returns its public
// reference (e.g. /uploads/3f1c....png). A partially written file is
// removed on copy failure.
func (f *FileStore) Store(src io.Reader, originalName string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	name := id.String() + filepath.Ext(originalName)
	dst, err := os.Create(filepath.Join(f.dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}

// Delete removes the file a reference points at. A missing file is not an
// error, so deleting twice is safe. References outside the public prefix
// are ignored.
func (f *FileStore) Delete(ref string) error {
	path, ok := f.Resolve(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve maps a public reference back to a path inside the content
// directory. It reports false for references outside the prefix or ones
// attempting path traversal.
func (f *FileStore) Resolve(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, PublicPrefix+"/")
	if !ok || name == "" {
		return "", false
	}
	if name != filepath.Base(name) {
		return "", false
	}
	return filepath.Join(f.dir, name), true
}
