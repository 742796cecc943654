package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage keeps uploads on the local filesystem. It is the fallback
// when no Cloudinary credentials are configured, suitable for development.
type LocalStorage struct {
	BaseDir string
	BaseURL string
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", baseDir, err)
	}
	return &LocalStorage{BaseDir: baseDir, BaseURL: baseURL}, nil
}

func (s *LocalStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	src, err := os.Open(localFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload source: %w", err)
	}
	defer src.Close()

	publicID := filepath.Join(destFolder, uuid.NewString()+filepath.Ext(localFilePath))
	destPath := filepath.Join(s.BaseDir, publicID)
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dest folder: %w", err)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create dest file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy upload: %w", err)
	}
	return publicID, nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, publicID string) error {
	if err := os.Remove(filepath.Join(s.BaseDir, publicID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", publicID, err)
	}
	return nil
}

func (s *LocalStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	return s.BaseURL + "/" + filepath.ToSlash(publicID), nil
}
