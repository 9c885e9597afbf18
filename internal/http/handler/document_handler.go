package handler

import (
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/meridiancg/backoffice-api/internal/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, logger: logger}
}

// Upload godoc
// @Summary Upload a document to a quote
// @Description Accepts multipart/form-data with a single "file" field
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.DocumentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/documents [post]
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid 'file' form field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	doc, err := h.documentService.Upload(r.Context(), quoteID, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, h.logger, err, "upload document")
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

// Download godoc
// @Summary Download a document
// @Tags Documents
// @Produce octet-stream
// @Param id path string true "Document ID" format(uuid)
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	doc, body, err := h.documentService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "download document")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	if doc.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.SizeBytes, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("document stream interrupted",
			zap.String("document_id", id.String()), zap.Error(err))
	}
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Param id path string true "Document ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByQuote godoc
// @Summary List a quote's documents
// @Tags Documents
// @Produce json
// @Param id path string true "Quote ID" format(uuid)
// @Success 200 {array} domain.DocumentDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/documents [get]
func (h *DocumentHandler) ListByQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, err := parseUUIDParam(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	docs, err := h.documentService.ListByQuote(r.Context(), quoteID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list documents")
		return
	}

	respondJSON(w, http.StatusOK, docs)
}
