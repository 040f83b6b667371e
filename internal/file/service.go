package file

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keja/service/internal/storage"
)

const defaultContentType = "application/octet-stream"

// metadataStore is implemented by Repository.
type metadataStore interface {
	Create(ctx context.Context, f *File) error
	List(ctx context.Context, bucket string) ([]File, error)
	GetByName(ctx context.Context, bucket, name string) (*File, error)
	Delete(ctx context.Context, bucket, id string) (*File, error)
	Ping(ctx context.Context) error
}

// Service is the object store adapter: bytes live in blob storage under the
// stored name, metadata lives in the repository. An object becomes visible only
// after both writes succeed.
type Service struct {
	repo   metadataStore
	blobs  storage.Storage
	random io.Reader
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a new file Service.
func NewService(repo metadataStore, blobs storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		random: rand.Reader,
		now:    time.Now,
		logger: logger,
	}
}

// Put stores the content of r as a new object and returns its metadata.
// size is the exact byte count, or -1 when unknown.
func (s *Service) Put(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (*File, error) {
	name, err := GenerateName(s.random, originalName)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewRandomFromReader(s.random)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	obj, err := s.blobs.Upload(ctx, name, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", name, err)
	}

	f := &File{
		ID:           id.String(),
		StoredName:   name,
		OriginalName: originalName,
		ContentType:  contentType,
		Length:       obj.Size,
		Bucket:       s.blobs.Bucket(),
		ETag:         obj.ETag,
		UploadDate:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		s.discardBlob(ctx, name)
		return nil, fmt.Errorf("record %q: %w", name, err)
	}
	return f, nil
}

// List returns every stored object. An empty slice is not an error.
func (s *Service) List(ctx context.Context) ([]File, error) {
	return s.repo.List(ctx, s.blobs.Bucket())
}

// FindByName looks up a stored object by its exact stored name.
func (s *Service) FindByName(ctx context.Context, name string) (*File, error) {
	return s.repo.GetByName(ctx, s.blobs.Bucket(), name)
}

// FindImage is FindByName restricted to the content types served inline.
func (s *Service) FindImage(ctx context.Context, name string) (*File, error) {
	f, err := s.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !IsImage(f.ContentType) {
		return nil, ErrNotImage
	}
	return f, nil
}

// Open returns a forward-only reader over the bytes of name, bound to ctx.
// The caller must close it.
func (s *Service) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.blobs.Download(ctx, name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	return rc, nil
}

// Remove deletes the object with the internal identifier id. Unknown and
// malformed identifiers are ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	f, err := s.repo.Delete(ctx, s.blobs.Bucket(), id)
	if err != nil {
		return err
	}
	// The object is gone once its row is; a failed blob delete only leaves an orphan.
	if err := s.blobs.Delete(context.WithoutCancel(ctx), f.StoredName); err != nil {
		s.logger.Warn("orphaned blob after delete",
			zap.String("stored_name", f.StoredName),
			zap.Error(err),
		)
	}
	return nil
}

// Ping checks that both the metadata database and the bucket are reachable.
// The bucket is created when it is missing.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return err
	}
	if err := s.blobs.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	return nil
}

func (s *Service) discardBlob(ctx context.Context, name string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), name); err != nil {
		s.logger.Warn("failed to discard blob after metadata error",
			zap.String("stored_name", name),
			zap.Error(err),
		)
	}
}
