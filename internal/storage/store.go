package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when a file is not in the store
	ErrNotFound = errors.New("file not found")

	// ErrInvalidName is returned for names that would escape the store
	ErrInvalidName = errors.New("invalid path sequence in filename")
)

// DefaultContentType is reported when the content type cannot be detected
const DefaultContentType = "application/octet-stream"

// FileStore keeps uploaded and generated images in a single flat directory
type FileStore struct {
	fs afero.Fs
}

// NewFileStore wraps fs, whose root is the store directory
func NewFileStore(fs afero.Fs) *FileStore {
	return &FileStore{fs: fs}
}

// OpenDir creates dir if needed and returns a store rooted there
func OpenDir(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve upload directory %s: %w", dir, err)
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("could not create the directory where the uploaded files will live: %w", err)
	}
	log.WithField("dir", abs).Info("Using file store")
	return NewFileStore(afero.NewBasePathFs(osFs, abs)), nil
}

// CleanName normalizes a client supplied filename. Names containing "..",
// path separators or "%" are rejected, the latter so every stored name
// survives the round trip through an escaped download link.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if name == "" || name == "." || strings.ContainsAny(name, `/\%`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

func (s *FileStore) path(name string) (string, error) {
	clean, err := CleanName(name)
	if err != nil {
		return "", err
	}
	return "/" + clean, nil
}

// Save copies r into name, replacing an existing file, and returns the
// number of bytes written
func (s *FileStore) Save(name string, r io.Reader) (int64, error) {
	p, err := s.path(name)
	if err != nil {
		return 0, err
	}

	f, err := s.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("could not store file %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("could not store file %s: %w", name, err)
	}

	log.WithFields(log.Fields{"file": name, "size": n}).Debug("Stored file")
	return n, nil
}

// Load reads the whole content of name
func (s *FileStore) Load(name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("could not read file %s: %w", name, err)
	}
	return data, nil
}

// Exists reports whether name is a regular file in the store
func (s *FileStore) Exists(name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	info, err := s.fs.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// Delete removes name from the store
func (s *FileStore) Delete(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("trouble deleting file %s: %w", name, err)
	}
	log.WithField("file", name).Debug("Deleted file")
	return nil
}

// List returns the names of all stored files in lexical order
func (s *FileStore) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, "/")
	if err != nil {
		return nil, fmt.Errorf("could not list files: %w", err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.Mode().IsRegular() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DetectContentType sniffs the MIME type of data
func DetectContentType(data []byte) string {
	mtype := mimetype.Detect(data)
	if mtype == nil {
		return DefaultContentType
	}
	return mtype.String()
}
