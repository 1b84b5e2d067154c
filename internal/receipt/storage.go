package receipt

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageStore defines the interface for receipt photo storage
type ImageStore interface {
	// Save stores a photo and returns its reference
	Save(name string, data []byte) (string, error)

	// Get retrieves a photo by reference
	Get(ref string) ([]byte, error)

	// Delete removes a photo
	Delete(ref string) error
}

// LocalImageStore implements ImageStore on the local filesystem
type LocalImageStore struct {
	basePath string
}

// NewLocalImageStore creates the storage directory if needed
func NewLocalImageStore(basePath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalImageStore{basePath: basePath}, nil
}

// path confines a reference to the storage directory
func (l *LocalImageStore) path(ref string) string {
	return filepath.Join(l.basePath, filepath.Base(ref))
}

// Save writes a photo to disk
func (l *LocalImageStore) Save(name string, data []byte) (string, error) {
	ref := filepath.Base(name)
	if err := os.WriteFile(l.path(ref), data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return ref, nil
}

// Get reads a photo from disk
func (l *LocalImageStore) Get(ref string) ([]byte, error) {
	data, err := os.ReadFile(l.path(ref))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a photo from disk
func (l *LocalImageStore) Delete(ref string) error {
	if err := os.Remove(l.path(ref)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
