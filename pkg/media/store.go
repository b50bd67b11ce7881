package media

import (
	"context"
	"io"
)

// Store persists uploaded files and base64 payloads and hands back a
// public URL. Upload failures are recovered by callers item-by-item;
// only the surrounding record transaction is allowed to hard-fail.
type Store interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
	UploadBase64(ctx context.Context, data string) (string, error)
}
