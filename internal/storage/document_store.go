package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentStore writes uploaded documents under a base directory and hands
// back a stable path key. Callers validate extensions before storing.
type DocumentStore struct {
	baseDir string
}

func NewDocumentStore(baseDir string) *DocumentStore {
	return &DocumentStore{baseDir: baseDir}
}

func (store *DocumentStore) Store(data []byte, extension string) (string, error) {
	if err := os.MkdirAll(store.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	path := filepath.Join(store.baseDir, uuid.NewString()+extension)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return path, nil
}
