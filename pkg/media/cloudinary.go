package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// UploadBase64 accepts either a full data URI or a bare base64 payload.
func (s *CloudinaryStore) UploadBase64(ctx context.Context, data string) (string, error) {
	if !strings.HasPrefix(data, "data:") {
		data = "data:image/png;base64," + data
	}
	result, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
