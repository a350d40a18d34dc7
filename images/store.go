package images

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists cover bytes under a filename and returns the public path
// the catalog records for them.
type Store interface {
	Put(filename string, data []byte) (string, error)
}

// DirStore keeps covers on the local filesystem under a single directory,
// served as static assets.
type DirStore struct {
	Dir          string
	PublicPrefix string
}

func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DirStore{Dir: dir, PublicPrefix: "/static/novels"}, nil
}

func (s *DirStore) Put(filename string, data []byte) (string, error) {
	target := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	return s.PublicPrefix + "/" + filename, nil
}
