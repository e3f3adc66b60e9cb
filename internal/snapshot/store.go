package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"curriculum-kit/internal/domain"
)

// Store keeps named snapshots under one directory.
// Writes are atomic and durable: temp file, fsync, rename, then dir fsync.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("snapshot: dir is required")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Path resolves a snapshot name inside the store. Names must be plain file names.
func (s *Store) Path(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" || n != filepath.Base(n) || n == "." || n == ".." {
		return "", fmt.Errorf("snapshot: invalid name %q", name)
	}
	return filepath.Join(s.dir, n), nil
}

func (s *Store) Save(name string, sc domain.SavedContent) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	return SaveFile(p, sc)
}

func (s *Store) Load(name string) (domain.SavedContent, error) {
	p, err := s.Path(name)
	if err != nil {
		return domain.SavedContent{}, err
	}
	return LoadFile(p)
}

// List returns snapshot names with a known extension, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot: list %s: %w", s.dir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) Delete(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("snapshot: delete %s: %w", name, err)
	}
	return nil
}

// SaveFile encodes sc in the format implied by path and writes it atomically.
func SaveFile(path string, sc domain.SavedContent) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, sc, f); err != nil {
		return err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

func LoadFile(path string) (domain.SavedContent, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return domain.SavedContent{}, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return domain.SavedContent{}, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer fh.Close()
	return Decode(fh, f)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
