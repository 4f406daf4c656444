package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// uploadAPI is the part of the Cloudinary upload API the store needs
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// assetAPI is the part of the Cloudinary Admin API the store needs
type assetAPI interface {
	Asset(ctx context.Context, params admin.AssetParams) (*admin.AssetResult, error)
}

// CloudinaryStore implements domain.DocumentStore on Cloudinary.
// Images are stored as image resources, everything else as raw files.
type CloudinaryStore struct {
	api    uploadAPI
	assets assetAPI
	folder string
}

// NewCloudinaryStore creates a store from account credentials
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &CloudinaryStore{api: &cld.Upload, assets: &cld.Admin, folder: strings.Trim(folder, "/")}, nil
}

// Put implements domain.DocumentStore
func (s *CloudinaryStore) Put(ctx context.Context, filePath, contentType string, content io.Reader, size int64) (*domain.StoredFile, error) {
	resourceType := resourceTypeFor(filePath)
	res, err := s.api.Upload(ctx, content, uploader.UploadParams{
		PublicID:     s.publicID(filePath, resourceType),
		ResourceType: resourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return &domain.StoredFile{
		Path:        filePath,
		URL:         res.SecureURL,
		ContentType: contentType,
		SizeBytes:   size,
	}, nil
}

// Delete implements domain.DocumentStore. Deleting a missing file is not an error.
func (s *CloudinaryStore) Delete(ctx context.Context, filePath string) error {
	resourceType := resourceTypeFor(filePath)
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     s.publicID(filePath, resourceType),
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}

// Stat implements domain.DocumentStore with an Admin API asset lookup
func (s *CloudinaryStore) Stat(ctx context.Context, filePath string) (*domain.StoredFile, error) {
	resourceType := resourceTypeFor(filePath)
	res, err := s.assets.Asset(ctx, admin.AssetParams{
		PublicID:  s.publicID(filePath, resourceType),
		AssetType: api.AssetType(resourceType),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary asset: %w", err)
	}
	if msg := res.Error.Message; msg != "" {
		if strings.Contains(strings.ToLower(msg), "not found") {
			return nil, domain.ErrFileNotStored
		}
		return nil, fmt.Errorf("cloudinary asset: %s", msg)
	}

	return &domain.StoredFile{
		Path:      filePath,
		URL:       res.SecureURL,
		SizeBytes: int64(res.Bytes),
	}, nil
}

// publicID maps a storage path to a Cloudinary public id. Image ids drop the
// extension; raw ids keep it.
func (s *CloudinaryStore) publicID(filePath, resourceType string) string {
	id := filePath
	if resourceType == "image" {
		id = strings.TrimSuffix(id, path.Ext(id))
	}
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func resourceTypeFor(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	}
	return "raw"
}

var _ domain.DocumentStore = (*CloudinaryStore)(nil)
