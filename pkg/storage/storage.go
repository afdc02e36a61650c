package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrExists a stored or fetched file would overwrite an existing one
var ErrExists = errors.New("storage: target already exists")

// Store copies uploaded files into a fixed directory under a derived name.
// The returned path is what gets persisted in file_path columns; every
// stored name is unique, so a path belongs to exactly one row.
type Store struct {
	dir string
}

// New creates a store rooted at dir
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory
func (s *Store) Dir() string { return s.dir }

// Save copies src into the store as name and returns the stored path.
// An existing file of that name is never replaced.
func (s *Store) Save(src, name string) (string, error) {
	name = sanitize(name)
	if name == "" {
		return "", fmt.Errorf("storage: empty file name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	if err := copyExclusive(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Fetch copies a stored file out to dst, refusing to overwrite
func (s *Store) Fetch(path, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	return copyExclusive(path, dst)
}

// Remove deletes a stored file; a missing file is not an error
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

// SubmissionName builds {assignmentID}_{studentID}_{uuid}_{basename}
func SubmissionName(assignmentID int64, studentID, src string) string {
	return fmt.Sprintf("%d_%s_%s_%s", assignmentID, studentID, uuid.NewString(), filepath.Base(src))
}

// MaterialName builds {courseCode}_{uuid}_{basename}
func MaterialName(courseCode, src string) string {
	return fmt.Sprintf("%s_%s_%s", courseCode, uuid.NewString(), filepath.Base(src))
}

func copyExclusive(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("storage: open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
		return fmt.Errorf("storage: create: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("storage: copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	if name == "." || name == ".." {
		return ""
	}
	return name
}
