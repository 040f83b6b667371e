package file

import (
	"time"

	"github.com/dustin/go-humanize"
)

// View is the presentation form of a File used by the HTML listing.
type View struct {
	ID           string
	StoredName   string
	OriginalName string
	ContentType  string
	Length       int64
	UploadDate   time.Time
	IsImage      bool
}

// IsImage reports whether contentType is one of the types served inline.
func IsImage(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png"
}

// NewView maps f to its view. f is not modified.
func NewView(f File) View {
	return View{
		ID:           f.ID,
		StoredName:   f.StoredName,
		OriginalName: f.OriginalName,
		ContentType:  f.ContentType,
		Length:       f.Length,
		UploadDate:   f.UploadDate,
		IsImage:      IsImage(f.ContentType),
	}
}

// NewViews maps every file, preserving order.
func NewViews(files []File) []View {
	views := make([]View, 0, len(files))
	for _, f := range files {
		views = append(views, NewView(f))
	}
	return views
}

// Size is the human-readable length, e.g. "52 kB".
func (v View) Size() string {
	if v.Length < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(v.Length))
}

// Age is the human-readable upload time, e.g. "3 minutes ago".
func (v View) Age() string {
	return humanize.Time(v.UploadDate)
}

// DisplayName prefers the client's original name and falls back to the stored one.
func (v View) DisplayName() string {
	if v.OriginalName != "" {
		return v.OriginalName
	}
	return v.StoredName
}
