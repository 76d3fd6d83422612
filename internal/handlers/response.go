package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/service"
)

// maxJSONBody caps JSON request bodies in bytes.
const maxJSONBody = 1 << 20

// Envelope wraps every JSON response.
//
// swagger:model Envelope
type Envelope struct {
	// "success" or "error"
	Status string `json:"status"`
	// Payload of a successful response
	Data any `json:"data,omitempty"`
	// Reason of a failed response
	Message string `json:"message,omitempty"`
}

// writeSuccess writes data in a success envelope.
func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, Envelope{Status: "success", Data: data})
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, Envelope{Status: "error", Message: message})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// errorStatus maps service errors to HTTP status codes and client messages.
func errorStatus(err error, defaultMsg string) (int, string) {
	var validationErr *service.ValidationError
	var ingestErr *service.IngestError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.As(err, &ingestErr):
		return http.StatusBadGateway, "Document ingestion incomplete"
	case errors.Is(err, rag.ErrSearch):
		return http.StatusServiceUnavailable, "Section search unavailable"
	case errors.Is(err, rag.ErrEmbedding):
		return http.StatusBadGateway, "Embedding service error"
	case errors.Is(err, rag.ErrCompletion):
		return http.StatusBadGateway, "Language model error"
	case errors.Is(err, service.ErrExternalService):
		return http.StatusBadGateway, "External service error"
	default:
		return http.StatusInternalServerError, defaultMsg
	}
}

// handleServiceError logs err and writes the mapped error envelope. An
// *service.IngestError also carries its per-chunk report as data.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	statusCode, message := errorStatus(err, defaultMsg)
	logger := contextutil.LoggerFromContext(ctx)
	if statusCode >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "service error", "status", statusCode, "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "status", statusCode, "error", err)
	}

	env := Envelope{Status: "error", Message: message}
	var ingestErr *service.IngestError
	if errors.As(err, &ingestErr) {
		env.Data = ingestErr
	}
	writeEnvelope(w, statusCode, env)
}
