package file

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*Service, *memRepo, *memBlobs) {
	t.Helper()
	repo := &memRepo{}
	blobs := newMemBlobs()
	svc := NewService(repo, blobs, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	return svc, repo, blobs
}

func TestService_Put(t *testing.T) {
	svc, repo, blobs := newTestService(t)

	f, err := svc.Put(context.Background(), "notes.txt", "text/plain", strings.NewReader("hello"), 5)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(f.StoredName, ".txt"))
	assert.Regexp(t, storedNameRe, f.StoredName)
	assert.Equal(t, "notes.txt", f.OriginalName)
	assert.Equal(t, "text/plain", f.ContentType)
	assert.Equal(t, int64(5), f.Length)
	assert.Equal(t, "uploads", f.Bucket)
	assert.Equal(t, "etag-"+f.StoredName, f.ETag)
	assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), f.UploadDate)
	assert.NotEmpty(t, f.ID)

	assert.True(t, blobs.has(f.StoredName))
	listed, err := repo.List(context.Background(), "uploads")
	require.NoError(t, err)
	assert.Equal(t, []File{*f}, listed)
}

func TestService_Put_DefaultsContentType(t *testing.T) {
	svc, _, _ := newTestService(t)

	f, err := svc.Put(context.Background(), "blob", "", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", f.ContentType)
}

func TestService_Put_RandomSourceFailureWritesNothing(t *testing.T) {
	svc, repo, blobs := newTestService(t)
	svc.random = failingReader{}

	_, err := svc.Put(context.Background(), "cat.jpg", "image/jpeg", strings.NewReader("x"), 1)
	assert.True(t, errors.Is(err, ErrRandomSource), "got %v", err)
	assert.Empty(t, blobs.objects)
	assert.Empty(t, repo.files)
}

func TestService_Put_UploadFailure(t *testing.T) {
	svc, repo, blobs := newTestService(t)
	blobs.uploadErr = errors.New("bucket gone")

	_, err := svc.Put(context.Background(), "cat.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
	assert.Empty(t, repo.files)
}

func TestService_Put_MetadataFailureDiscardsBlob(t *testing.T) {
	svc, repo, blobs := newTestService(t)
	repo.createErr = errors.New("db down")

	_, err := svc.Put(context.Background(), "cat.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.Error(t, err)

	assert.Empty(t, blobs.objects, "no partial object may remain")
	assert.Len(t, blobs.deleted, 1)
	files, _ := svc.List(context.Background())
	assert.Empty(t, files)
}

func TestService_FindByNameAndOpen(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	f, err := svc.Put(ctx, "a.png", "image/png", strings.NewReader("PNGDATA"), 7)
	require.NoError(t, err)

	got, err := svc.FindByName(ctx, f.StoredName)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	rc, err := svc.Open(ctx, f.StoredName)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "PNGDATA", string(data))

	_, err = svc.FindByName(ctx, "nope.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.Open(ctx, "nope.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_Open_BackendError(t *testing.T) {
	svc, _, blobs := newTestService(t)
	blobs.downloadErr = errors.New("timeout")

	_, err := svc.Open(context.Background(), "x.png")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestService_Remove(t *testing.T) {
	svc, _, blobs := newTestService(t)
	ctx := context.Background()

	f, err := svc.Put(ctx, "a.txt", "text/plain", strings.NewReader("a"), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, f.ID))
	assert.False(t, blobs.has(f.StoredName))

	files, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	err = svc.Remove(ctx, f.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "re-delete must not succeed, got %v", err)
}

func TestService_Remove_MalformedID(t *testing.T) {
	svc, _, blobs := newTestService(t)

	err := svc.Remove(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, blobs.deleted)
}

func TestService_Remove_BlobFailureLeavesObjectGone(t *testing.T) {
	svc, _, blobs := newTestService(t)
	ctx := context.Background()

	f, err := svc.Put(ctx, "a.txt", "text/plain", strings.NewReader("a"), 1)
	require.NoError(t, err)
	blobs.deleteErr = errors.New("minio flaked")

	require.NoError(t, svc.Remove(ctx, f.ID))
	_, err = svc.FindByName(ctx, f.StoredName)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_FindImage(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	img, err := svc.Put(ctx, "cat.jpg", "image/jpeg", strings.NewReader("jpeg"), 4)
	require.NoError(t, err)
	doc, err := svc.Put(ctx, "cv.pdf", "application/pdf", strings.NewReader("pdf"), 3)
	require.NoError(t, err)

	got, err := svc.FindImage(ctx, img.StoredName)
	require.NoError(t, err)
	assert.Equal(t, img.ID, got.ID)

	_, err = svc.FindImage(ctx, doc.StoredName)
	assert.True(t, errors.Is(err, ErrNotImage))

	_, err = svc.FindImage(ctx, "nope.png")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_Ping(t *testing.T) {
	svc, repo, blobs := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Ping(ctx))
	assert.Equal(t, 1, blobs.ensured)

	repo.pingErr = errors.New("connection refused")
	assert.Error(t, svc.Ping(ctx))
	assert.Equal(t, 1, blobs.ensured, "bucket is not touched while the database is down")

	repo.pingErr = nil
	blobs.ensureErr = errors.New("minio unreachable")
	err := svc.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure bucket")
}
