package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// NewCloudinaryStorage builds a storage service from a CLOUDINARY_URL style
// connection string.
func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadFile uploads the file into destFolder and returns the public ID.
func (s *CloudinaryStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: destFolder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("no public ID returned for upload")
	}
	return result.PublicID, nil
}

// DeleteFile deletes a stored file by its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicID, err)
	}
	return nil
}

// GetDownloadURL constructs a public URL for an uploaded photo.
func (s *CloudinaryStorage) GetDownloadURL(ctx context.Context, publicID string) (string, error) {
	img, err := s.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve asset %s: %w", publicID, err)
	}
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build URL for %s: %w", publicID, err)
	}
	return url, nil
}
