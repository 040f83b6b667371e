package file

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/keja/service/internal/response"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// indexData is what templates/index.html renders.
type indexData struct {
	NoFiles bool
	Files   []View
}

// Index renders the upload form and the listing of stored files.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list files for page", zap.Error(err))
		response.InternalError(w)
		return
	}

	data := indexData{NoFiles: len(files) == 0}
	if !data.NoFiles {
		data.Files = NewViews(files)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render index", zap.Error(err))
		response.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
