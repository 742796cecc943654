package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService persists uploaded move photos and hands back stable
// identifiers plus public URLs for previews.
type StorageService interface {
	// UploadFile stores the file at localFilePath under destFolder and
	// returns the permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a previously uploaded file by its identifier.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL constructs a public URL for the stored file.
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
}

// CloudinaryStorage implements StorageService on top of Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}
