package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Upload(context.Context, File) (string, error) {
	return s.url, s.err
}

func TestService_UploadUsesRemoteURL(t *testing.T) {
	svc := NewService(stubUploader{url: "https://cdn.orion.dev/a.png"}, nil)
	got := svc.Upload(context.Background(), File{Name: "a.png", ContentType: "image/png", Data: []byte("x")})
	assert.Equal(t, "https://cdn.orion.dev/a.png", got)
}

func TestService_UploadFallsBackToLocal(t *testing.T) {
	local := NewLocalStore()
	svc := NewService(stubUploader{err: errors.New("quota exceeded")}, local)

	ref := svc.Upload(context.Background(), File{Name: "a.png", ContentType: "image/png", Data: []byte("pixels")})
	require.True(t, strings.HasPrefix(ref, LocalPrefix))

	f, ok := local.Get(strings.TrimPrefix(ref, LocalPrefix))
	require.True(t, ok)
	assert.Equal(t, []byte("pixels"), f.Data)
	assert.Equal(t, "image/png", f.ContentType)
}

func TestService_NoUploaderKeepsLocal(t *testing.T) {
	svc := NewService(nil, nil)
	ref := svc.Upload(context.Background(), File{Name: "clip.mp4", ContentType: "video/mp4"})
	assert.True(t, strings.HasPrefix(ref, LocalPrefix))

	_, ok := svc.Local().Get("missing")
	assert.False(t, ok)
}

func TestFile(t *testing.T) {
	assert.True(t, File{ContentType: "video/mp4"}.IsVideo())
	assert.False(t, File{ContentType: "image/png"}.IsVideo())
	assert.Equal(t, ".png", File{Name: "Photo.PNG"}.Ext())
	assert.Equal(t, "", File{Name: "noext"}.Ext())
}

func TestObjectKey(t *testing.T) {
	assert.True(t, strings.HasPrefix(objectKey(File{Name: "a.mp4", ContentType: "video/mp4"}), "uploads/videos/"))
	assert.True(t, strings.HasPrefix(objectKey(File{Name: "a.png", ContentType: "image/png"}), "uploads/images/"))
	assert.True(t, strings.HasSuffix(objectKey(File{Name: "a.bin"}), ".bin"))
}

func TestS3Uploader_ObjectURL(t *testing.T) {
	u := &S3Uploader{cfg: S3Config{Bucket: "orion", Region: "eu-west-1"}}
	assert.Equal(t, "https://orion.s3.eu-west-1.amazonaws.com/k", u.objectURL("k"))

	u.cfg.Endpoint = "https://s3.example.com/"
	assert.Equal(t, "https://s3.example.com/orion/k", u.objectURL("k"))

	u.cfg.PublicBaseURL = "https://cdn.orion.dev/"
	assert.Equal(t, "https://cdn.orion.dev/k", u.objectURL("k"))
}
