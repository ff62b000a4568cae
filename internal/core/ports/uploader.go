package ports

import "context"

type UploadOptions struct {
	Folder   string
	PublicID string
}

type UploadResult struct {
	SecureURL string
	PublicID  string
	Bytes     int64
}

// ImageUploader streams an image to the external host and returns where it
// ended up.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, opts UploadOptions) (UploadResult, error)
}
