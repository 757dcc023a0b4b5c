package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pocket-crm/internal/common/models"
)

// LocalStore keeps archives in one directory.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

// Path resolves name inside the store.
func (s *LocalStore) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

// Write stores the output of fill as name. The file only appears under its
// final name once fill succeeds.
func (s *LocalStore) Write(name string, fill func(w io.Writer) error) (*BackupFile, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.Dir, ".partial-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if err := fill(tmp); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}
	return s.Stat(name)
}

func (s *LocalStore) Stat(name string) (*BackupFile, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("backup %s: %w", name, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &BackupFile{Name: name, Size: info.Size(), CreatedAt: info.ModTime()}, nil
}

// List returns the archives, newest first.
func (s *LocalStore) List() ([]BackupFile, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	files := []BackupFile{}
	for _, e := range entries {
		if e.IsDir() || !ValidName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, BackupFile{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	// names embed the creation time
	sort.Slice(files, func(i, j int) bool {
		return strings.Compare(files[i].Name, files[j].Name) > 0
	})
	return files, nil
}

func (s *LocalStore) Open(name string) (*os.File, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("backup %s: %w", name, models.ErrNotFound)
	}
	return f, err
}

func (s *LocalStore) Delete(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup %s: %w", name, models.ErrNotFound)
	}
	return err
}
