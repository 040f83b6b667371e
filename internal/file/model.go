// Package file implements the file-serving contract: naming, storing, listing,
// streaming and removing uploaded files.
package file

import (
	"errors"
	"time"
)

// File is the metadata of one stored object.
type File struct {
	ID           string    `json:"id"           example:"6f1c1f3e-2b8a-4a55-9f0e-3f9f8d7c2a11"`
	StoredName   string    `json:"filename"     example:"0c6f3c1b9f5e4f0f8a1d2b3c4d5e6f70.png"`
	OriginalName string    `json:"originalName" example:"holiday.png"`
	ContentType  string    `json:"contentType"  example:"image/png"`
	Length       int64     `json:"length"       example:"52340"`
	Bucket       string    `json:"bucket"       example:"uploads"`
	ETag         string    `json:"etag"         example:"9b2cf535f27731c974343645a3985328"`
	UploadDate   time.Time `json:"uploadDate"   example:"2026-02-27T14:48:34Z"`
}

// ErrNotFound is returned when no stored object matches a name or identifier.
var ErrNotFound = errors.New("file not found")

// ErrNotImage is returned when an image-only endpoint is asked for another content type.
var ErrNotImage = errors.New("file is not an image")

// ErrRandomSource is returned when a stored name cannot be generated.
var ErrRandomSource = errors.New("random source unavailable")
