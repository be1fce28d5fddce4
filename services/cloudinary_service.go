package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/online-bazar/bazar-backend/config"
)

const (
	ItemMediaFolder = "bazar/items"
	BlogMediaFolder = "bazar/blog"
)

type UploadedMedia struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaUploader stores images and returns their public URLs.
type MediaUploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (UploadedMedia, error)
	DeleteFolder(ctx context.Context, folder string) error
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadImage uploads a single image and returns its secure URL.
func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (UploadedMedia, error) {
	unique := true
	overwrite := false
	params := uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}
	if name := mediaPublicName(filename); name != "" {
		params.PublicID = name
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return UploadedMedia{}, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return UploadedMedia{}, fmt.Errorf("upload successful but no URL returned")
	}

	config.Log.Info("[media.upload] image uploaded", "folder", folder, "public_id", result.PublicID)
	return UploadedMedia{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// DeleteFolder removes every asset under folder, then the folder itself.
func (s *CloudinaryService) DeleteFolder(ctx context.Context, folder string) error {
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folder},
	}); err != nil {
		return fmt.Errorf("failed to delete assets in folder %s: %w", folder, err)
	}
	// Cloudinary usually drops empty folders on its own.
	if _, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder}); err != nil {
		config.Log.Debug("[media.delete] folder not removed", "folder", folder, "error", err)
	}
	return nil
}

// mediaPublicName strips the extension and anything unsafe for a public id.
func mediaPublicName(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(filename) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}
