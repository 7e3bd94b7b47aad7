package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalBlobStore implements BlobStore on the local filesystem. Objects
// live under basePath; generated URLs use baseURL when one is configured
// and fall back to file:// URLs otherwise.
type LocalBlobStore struct {
	basePath string
	baseURL  string
}

// NewLocalBlobStore creates a new LocalBlobStore instance
func NewLocalBlobStore(basePath, baseURL string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewBlobError("NewLocalBlobStore", "", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewBlobError("NewLocalBlobStore", "", err)
	}

	return &LocalBlobStore{
		basePath: absPath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put implements BlobStore.Put
func (l *LocalBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := l.validateKey(key); err != nil {
		return "", NewBlobError("Put", key, err)
	}
	if len(data) == 0 {
		return "", NewBlobError("Put", key, ErrInvalidData)
	}

	filePath := l.getFilePath(key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", NewBlobError("Put", key, err)
	}

	// Write atomically via a temp file so readers never see partial data
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", NewBlobError("Put", key, err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return "", NewBlobError("Put", key, err)
	}

	return l.urlFor(key), nil
}

// Get implements BlobStore.Get
func (l *LocalBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := l.validateKey(key); err != nil {
		return nil, NewBlobError("Get", key, err)
	}

	data, err := os.ReadFile(l.getFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewBlobError("Get", key, ErrObjectNotFound)
		}
		return nil, NewBlobError("Get", key, err)
	}
	return data, nil
}

// Delete implements BlobStore.Delete
func (l *LocalBlobStore) Delete(ctx context.Context, key string) error {
	if err := l.validateKey(key); err != nil {
		return NewBlobError("Delete", key, err)
	}

	if err := os.Remove(l.getFilePath(key)); err != nil {
		if os.IsNotExist(err) {
			return NewBlobError("Delete", key, ErrObjectNotFound)
		}
		return NewBlobError("Delete", key, err)
	}
	return nil
}

// Exists implements BlobStore.Exists
func (l *LocalBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := l.validateKey(key); err != nil {
		return false, NewBlobError("Exists", key, err)
	}

	_, err := os.Stat(l.getFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, NewBlobError("Exists", key, err)
	}
	return true, nil
}

// Close implements BlobStore.Close
func (l *LocalBlobStore) Close() error {
	return nil
}

func (l *LocalBlobStore) validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	// Prevent directory traversal
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}

func (l *LocalBlobStore) getFilePath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

func (l *LocalBlobStore) urlFor(key string) string {
	if l.baseURL != "" {
		return fmt.Sprintf("%s/%s", l.baseURL, key)
	}
	return fmt.Sprintf("file://%s", l.getFilePath(key))
}
