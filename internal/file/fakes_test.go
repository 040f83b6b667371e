package file

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/keja/service/internal/storage"
)

// memRepo is an in-memory metadataStore.
type memRepo struct {
	mu        sync.Mutex
	files     []File
	createErr error
	listErr   error
	pingErr   error
}

func (m *memRepo) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingErr
}

func (m *memRepo) Create(_ context.Context, f *File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.files {
		if existing.StoredName == f.StoredName {
			return ErrDuplicateName
		}
	}
	m.files = append(m.files, *f)
	return nil
}

func (m *memRepo) List(_ context.Context, bucket string) ([]File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []File{}
	for _, f := range m.files {
		if f.Bucket == bucket {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memRepo) GetByName(_ context.Context, bucket, name string) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.files {
		if f.Bucket == bucket && f.StoredName == name {
			f := f
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) Delete(_ context.Context, bucket, id string) (*File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.files {
		if f.Bucket == bucket && f.ID == id {
			m.files = append(m.files[:i], m.files[i+1:]...)
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

// memBlobs is an in-memory storage.Storage.
type memBlobs struct {
	mu          sync.Mutex
	objects     map[string][]byte
	uploadErr   error
	downloadErr error
	deleteErr   error
	ensureErr   error
	ensured     int
	// breakAfter, when non-zero, makes downloads fail after that many bytes
	// (negative: before the first byte).
	breakAfter int
	broken     []*brokenReader
	deleted    []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (m *memBlobs) Bucket() string { return "uploads" }

func (m *memBlobs) EnsureBucket(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.ensured++
	return nil
}

func (m *memBlobs) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (storage.Object, error) {
	if m.uploadErr != nil {
		return storage.Object{}, m.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.Object{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return storage.Object{Key: key, Size: int64(len(data)), ETag: "etag-" + key}, nil
}

func (m *memBlobs) Download(_ context.Context, key string) (io.ReadCloser, error) {
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	if m.breakAfter != 0 {
		br := &brokenReader{data: data[:min(max(m.breakAfter, 0), len(data))]}
		m.broken = append(m.broken, br)
		return br, nil
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, key)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	return nil
}

func (m *memBlobs) setBreakAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breakAfter = n
}

func (m *memBlobs) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

var errConnectionReset = errors.New("connection reset by peer")

// brokenReader yields data and then fails, like a backend dropping mid-transfer.
type brokenReader struct {
	data   []byte
	off    int
	closed bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if b.off >= len(b.data) {
		return 0, errConnectionReset
	}
	n := copy(p, b.data[b.off:])
	b.off += n
	return n, nil
}

func (b *brokenReader) Close() error {
	b.closed = true
	return nil
}

// failingReader stands in for an exhausted random source.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }
