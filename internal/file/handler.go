package file

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/keja/service/internal/metrics"
	"github.com/keja/service/internal/response"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc       *Service
	logger    *zap.Logger
	maxUpload int64
}

// NewHandler creates a new file Handler. maxUpload bounds the request body of an upload.
func NewHandler(svc *Service, logger *zap.Logger, maxUpload int64) *Handler {
	return &Handler{svc: svc, logger: logger, maxUpload: maxUpload}
}

// Routes mounts the page, upload, listing, retrieval and deletion endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/upload", h.Upload)
	r.Get("/files", h.List)
	r.Get("/files/{filename}", h.ServeImage)
	r.Delete("/files/{id}", h.Delete)
	r.Get("/image/{filename}", h.Download)
	r.Get("/download/{filename}", h.Download)
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Stores the single file sent in the multipart field "file" under a generated name. Redirects to the listing page, or returns the stored object when the client accepts JSON.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to store"
//	@Success		201		{object}	File
//	@Success		302
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		413	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.TooLarge(w, "File too large")
			return
		}
		response.BadRequest(w, "No file uploaded")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["file"]
	switch {
	case len(headers) == 0:
		response.BadRequest(w, "No file uploaded")
		return
	case len(headers) > 1:
		response.BadRequest(w, "Only one file can be uploaded")
		return
	}

	fh := headers[0]
	src, err := fh.Open()
	if err != nil {
		h.logger.Error("open multipart file", zap.Error(err))
		response.InternalError(w)
		return
	}
	defer src.Close()

	f, err := h.svc.Put(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), src, fh.Size)
	if err != nil {
		h.logger.Error("store upload", zap.String("original_name", fh.Filename), zap.Error(err))
		response.InternalError(w)
		return
	}
	metrics.ObserveUpload(f.Length)
	h.logger.Info("file stored",
		zap.String("id", f.ID),
		zap.String("stored_name", f.StoredName),
		zap.String("content_type", f.ContentType),
		zap.Int64("length", f.Length),
	)

	if acceptsJSON(r) {
		response.Created(w, f)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// List godoc
//
//	@Summary		List files
//	@Description	Returns the metadata of every stored file. An empty store answers 404.
//	@Tags			files
//	@Produce		json
//	@Success		200	{array}		File
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("list files", zap.Error(err))
		response.InternalError(w)
		return
	}
	if len(files) == 0 {
		response.NotFound(w, "No files Exist")
		return
	}
	response.OK(w, files)
}

// ServeImage godoc
//
//	@Summary		Show an image
//	@Description	Streams a stored JPEG or PNG inline. Other content types are rejected.
//	@Tags			files
//	@Produce		image/jpeg,image/png,json
//	@Param			filename	path	string	true	"Stored name"
//	@Success		200
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/files/{filename} [get]
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	const endpoint = "files"
	const notFound = "No files Exist"

	f, ok := h.lookup(w, r, h.svc.FindImage, endpoint, notFound)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	h.stream(w, r, endpoint, notFound, f)
}

// Download godoc
//
//	@Summary		Download a file
//	@Description	Streams any stored file as an attachment. /image/{filename} behaves identically.
//	@Tags			files
//	@Produce		octet-stream,json
//	@Param			filename	path	string	true	"Stored name"
//	@Success		200
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/download/{filename} [get]
//	@Router			/image/{filename} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const endpoint = "download"
	const notFound = "No file exists"

	f, ok := h.lookup(w, r, h.svc.FindByName, endpoint, notFound)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.StoredName+`"`)
	w.Header().Set("Content-Length", strconv.FormatInt(f.Length, 10))
	h.stream(w, r, endpoint, notFound, f)
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Description	Removes the stored file with the given identifier and redirects to the listing page. HTML forms may POST with ?_method=DELETE.
//	@Tags			files
//	@Produce		json
//	@Param			id	path	string	true	"File identifier"
//	@Success		302
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/files/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.svc.Remove(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "No file exists")
		return
	}
	if err != nil {
		h.logger.Error("delete file", zap.String("id", id), zap.Error(err))
		response.InternalError(w)
		return
	}

	metrics.FileDeleted()
	h.logger.Info("file deleted", zap.String("id", id))
	http.Redirect(w, r, "/", http.StatusFound)
}

// lookup resolves the {filename} URL parameter with find, answering 404/500 itself when it cannot.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, find func(context.Context, string) (*File, error), endpoint, notFound string) (*File, bool) {
	f, err := find(r.Context(), chi.URLParam(r, "filename"))
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.FileServed(endpoint, "not_found")
		response.NotFound(w, notFound)
		return nil, false
	case errors.Is(err, ErrNotImage):
		metrics.FileServed(endpoint, "rejected")
		response.NotFound(w, "Not an Image")
		return nil, false
	case err != nil:
		metrics.FileServed(endpoint, "error")
		h.logger.Error("find file", zap.Error(err))
		response.InternalError(w)
		return nil, false
	}
	return f, true
}

// stream copies the object bytes to w. The read stream is closed on every path.
// A failure before the first byte yields a JSON error; after it, the response is
// aborted so the client sees a truncated transfer instead of a hanging one.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, endpoint, notFound string, f *File) {
	rc, err := h.svc.Open(r.Context(), f.StoredName)
	if err != nil {
		clearBodyHeaders(w)
		if errors.Is(err, ErrNotFound) {
			metrics.FileServed(endpoint, "not_found")
			response.NotFound(w, notFound)
			return
		}
		metrics.FileServed(endpoint, "error")
		h.logger.Error("open stream", zap.String("stored_name", f.StoredName), zap.Error(err))
		response.InternalError(w)
		return
	}
	defer rc.Close()

	n, err := io.Copy(w, rc)
	if err == nil {
		metrics.FileServed(endpoint, "ok")
		return
	}

	if ctxErr := r.Context().Err(); ctxErr != nil {
		metrics.FileServed(endpoint, "canceled")
		h.logger.Debug("client went away mid-stream",
			zap.String("stored_name", f.StoredName),
			zap.Int64("written", n),
			zap.Error(ctxErr),
		)
		return
	}

	metrics.FileServed(endpoint, "error")
	h.logger.Error("stream failed",
		zap.String("stored_name", f.StoredName),
		zap.Int64("written", n),
		zap.Error(err),
	)
	if n == 0 {
		clearBodyHeaders(w)
		response.InternalError(w)
		return
	}
	panic(http.ErrAbortHandler)
}

func clearBodyHeaders(w http.ResponseWriter) {
	w.Header().Del("Content-Disposition")
	w.Header().Del("Content-Length")
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
