package media

import (
	"context"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"

	"github.com/anonto42/orion/backend/pkg/firebase"
)

// FirebaseUploader writes objects to the Firebase Storage bucket of an App.
type FirebaseUploader struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseUploader(app *firebase.App) (*FirebaseUploader, error) {
	bucket, err := app.StorageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open firebase bucket: %w", err)
	}
	return &FirebaseUploader{bucket: bucket, bucketName: app.Bucket}, nil
}

func (u *FirebaseUploader) Upload(ctx context.Context, f File) (string, error) {
	key := objectKey(f)

	w := u.bucket.Object(key).NewWriter(ctx)
	w.ContentType = f.ContentType
	if _, err := w.Write(f.Data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: firebase write %s: %v", ErrUploadFailed, key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: firebase close %s: %v", ErrUploadFailed, key, err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		u.bucketName, url.PathEscape(key)), nil
}
