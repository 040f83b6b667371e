package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateName is returned when a stored name is already taken.
var ErrDuplicateName = errors.New("stored name already exists")

// DBTX is the subset of *pgxpool.Pool (and pgx.Tx) the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository handles file metadata persistence.
type Repository struct {
	db DBTX
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db DBTX) *Repository {
	return &Repository{db: db}
}

const fileColumns = `id, stored_name, original_name, content_type, length, bucket, etag, upload_date`

// Create inserts the metadata row for a stored object.
func (r *Repository) Create(ctx context.Context, f *File) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO files (`+fileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.StoredName, f.OriginalName, f.ContentType, f.Length, f.Bucket, f.ETag, f.UploadDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

// List returns every file in bucket, oldest first.
func (r *Repository) List(ctx context.Context, bucket string) ([]File, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+fileColumns+`
		 FROM files WHERE bucket = $1
		 ORDER BY upload_date, id`,
		bucket,
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []File{}
	for rows.Next() {
		var f File
		if err := scanFile(rows, &f); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// GetByName fetches a file by its stored name.
func (r *Repository) GetByName(ctx context.Context, bucket, name string) (*File, error) {
	f := &File{}
	err := scanFile(r.db.QueryRow(ctx,
		`SELECT `+fileColumns+`
		 FROM files WHERE bucket = $1 AND stored_name = $2`,
		bucket, name,
	), f)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file by name: %w", err)
	}
	return f, nil
}

// Delete removes the row with id and returns what was deleted.
func (r *Repository) Delete(ctx context.Context, bucket, id string) (*File, error) {
	f := &File{}
	err := scanFile(r.db.QueryRow(ctx,
		`DELETE FROM files WHERE bucket = $1 AND id = $2
		 RETURNING `+fileColumns,
		bucket, id,
	), f)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete file: %w", err)
	}
	return f, nil
}

// Ping round-trips a trivial query to check the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func scanFile(row pgx.Row, f *File) error {
	return row.Scan(&f.ID, &f.StoredName, &f.OriginalName, &f.ContentType, &f.Length, &f.Bucket, &f.ETag, &f.UploadDate)
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
