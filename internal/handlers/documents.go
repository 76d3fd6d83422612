package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/service"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// DocumentHandler handles HTTP requests for topic documents.
type DocumentHandler struct {
	documents service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// ReindexResponse acknowledges a background reindex.
//
// swagger:model ReindexResponse
type ReindexResponse struct {
	TopicID   string `json:"topic_id"`
	Documents int    `json:"documents"`
}

// List handles GET /api/topics/{topicID}/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context(), chi.URLParam(r, "topicID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list documents")
		return
	}
	writeSuccess(w, http.StatusOK, docs)
}

// Upload handles POST /api/topics/{topicID}/documents with a multipart
// "file" field. The document is ingested before the response is written.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxDocumentSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		logger.WarnContext(ctx, "invalid multipart upload", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	result, err := h.documents.Upload(ctx, service.UploadRequest{
		TopicID:     chi.URLParam(r, "topicID"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to upload document")
		return
	}
	writeSuccess(w, http.StatusCreated, result)
}

// Download handles GET /api/documents/{documentID}/download.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	doc, content, err := h.documents.Download(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to download document")
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", fmt.Sprint(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// Delete handles DELETE /api/documents/{documentID}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "documentID")
	if err := h.documents.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r.Context(), err, "Failed to delete document")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// Reingest handles POST /api/documents/{documentID}/reingest.
func (h *DocumentHandler) Reingest(w http.ResponseWriter, r *http.Request) {
	report, err := h.documents.Reingest(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to reingest document")
		return
	}
	writeSuccess(w, http.StatusOK, report)
}

// Reindex handles POST /api/topics/{topicID}/reindex. Every document of
// the topic is reingested in the background; the response only confirms
// the job started. A topic already being reindexed gets 409.
func (h *DocumentHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	count, err := h.documents.Reindex(r.Context(), topicID)
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to start reindex")
		return
	}
	writeSuccess(w, http.StatusAccepted, ReindexResponse{TopicID: topicID, Documents: count})
}
