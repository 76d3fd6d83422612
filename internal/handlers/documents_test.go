package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/indexer"
	"salescoach-ai/internal/service"
	"salescoach-ai/internal/service/mocks"
	"salescoach-ai/internal/storage"
)

// multipartBody builds a multipart form with a single "file" part.
func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ingests the file", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().
			Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, req service.UploadRequest) (*service.UploadResult, error) {
				assert.Equal(t, "t1", req.TopicID)
				assert.Equal(t, "playbook.md", req.Filename)
				assert.Equal(t, []byte("# Playbook\n\nAsk open questions."), req.Content)
				return &service.UploadResult{
					Document: &storage.Document{ID: "d1", TopicID: "t1", Filename: "playbook.md", Status: storage.DocumentReady},
					Report:   &indexer.IngestReport{DocumentID: "d1", Stored: 1},
				}, nil
			})

		body, contentType := multipartBody(t, "file", "playbook.md", []byte("# Playbook\n\nAsk open questions."))
		req := withParams(httptest.NewRequest(http.MethodPost, "/api/topics/t1/documents", body), "topicID", "t1")
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Upload(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var result service.UploadResult
		env := decodeEnvelope(t, w, &result)
		assert.Equal(t, "success", env.Status)
		require.NotNil(t, result.Document)
		assert.Equal(t, "d1", result.Document.ID)
		assert.Equal(t, 1, result.Report.Stored)
	})

	t.Run("missing file field", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		body, contentType := multipartBody(t, "attachment", "playbook.md", []byte("x"))
		req := withParams(httptest.NewRequest(http.MethodPost, "/api/topics/t1/documents", body), "topicID", "t1")
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing file field")
	})

	t.Run("not multipart", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		req := httptest.NewRequest(http.MethodPost, "/api/topics/t1/documents", strings.NewReader(`{"file":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().
			Upload(gomock.Any(), gomock.Any()).
			Return(nil, &service.ValidationError{Field: "file", Message: "unsupported document type"})

		body, contentType := multipartBody(t, "file", "deck.pptx", []byte("PK"))
		req := withParams(httptest.NewRequest(http.MethodPost, "/api/topics/t1/documents", body), "topicID", "t1")
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "field file")
	})
}

func TestDocumentHandler_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("serves the original file", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().
			Download(gomock.Any(), "d1").
			Return(&storage.Document{ID: "d1", Filename: "q3 plan.pdf", ContentType: "application/pdf"}, []byte("%PDF-1.4"), nil)

		req := withParams(httptest.NewRequest(http.MethodGet, "/api/documents/d1/download", nil), "documentID", "d1")
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Download(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="q3 plan.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "8", w.Header().Get("Content-Length"))
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("unknown content type", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().
			Download(gomock.Any(), "d2").
			Return(&storage.Document{ID: "d2", Filename: "notes"}, []byte("hi"), nil)

		req := withParams(httptest.NewRequest(http.MethodGet, "/api/documents/d2/download", nil), "documentID", "d2")
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Download(w, req)

		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	})

	t.Run("missing document", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().
			Download(gomock.Any(), "nope").
			Return(nil, nil, fmt.Errorf("document %w", service.ErrNotFound))

		req := withParams(httptest.NewRequest(http.MethodGet, "/api/documents/nope/download", nil), "documentID", "nope")
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Download(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"error"`)
	})
}

func TestDocumentHandler_ListDeleteReingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	docs := mocks.NewMockDocumentService(ctrl)
	docs.EXPECT().List(gomock.Any(), "t1").Return([]storage.Document{{ID: "d1"}, {ID: "d2"}}, nil)
	docs.EXPECT().Delete(gomock.Any(), "d1").Return(nil)
	docs.EXPECT().Reingest(gomock.Any(), "d2").Return(&indexer.IngestReport{DocumentID: "d2", Stored: 3}, nil)
	h := NewDocumentHandler(docs)

	w := httptest.NewRecorder()
	h.List(w, withParams(httptest.NewRequest(http.MethodGet, "/api/topics/t1/documents", nil), "topicID", "t1"))
	var list []storage.Document
	decodeEnvelope(t, w, &list)
	assert.Len(t, list, 2)

	w = httptest.NewRecorder()
	h.Delete(w, withParams(httptest.NewRequest(http.MethodDelete, "/api/documents/d1", nil), "documentID", "d1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":{"id":"d1"}}`, w.Body.String())

	w = httptest.NewRecorder()
	h.Reingest(w, withParams(httptest.NewRequest(http.MethodPost, "/api/documents/d2/reingest", nil), "documentID", "d2"))
	var report indexer.IngestReport
	decodeEnvelope(t, w, &report)
	assert.Equal(t, 3, report.Stored)
}

func TestDocumentHandler_Reindex(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockDocumentService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "job started",
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Reindex(gomock.Any(), "t1").Return(2, nil)
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `{"status":"success","data":{"topic_id":"t1","documents":2}}`,
		},
		{
			name: "already running",
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Reindex(gomock.Any(), "t1").Return(0, fmt.Errorf("reindex of topic t1: %w", service.ErrConflict))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"status":"error","message":"reindex of topic t1: conflict"}`,
		},
		{
			name: "unknown topic",
			mockSetup: func(m *mocks.MockDocumentService) {
				m.EXPECT().Reindex(gomock.Any(), "t1").Return(0, fmt.Errorf("topic %w", service.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"status":"error","message":"topic not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			docs := mocks.NewMockDocumentService(ctrl)
			tt.mockSetup(docs)

			req := withParams(httptest.NewRequest(http.MethodPost, "/api/topics/t1/reindex", nil), "topicID", "t1")
			w := httptest.NewRecorder()

			NewDocumentHandler(docs).Reindex(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestDocumentHandler_IncompleteIngestFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	report := &indexer.IngestReport{
		DocumentID: "d1",
		Chunks: []indexer.ChunkResult{
			{Index: 0, SectionID: "s1", Status: indexer.ChunkStored},
			{Index: 1, Status: indexer.ChunkFailed, Error: "embedding failed: rate limited"},
		},
		Stored: 1,
		Failed: 1,
	}
	incomplete := func() error {
		return &service.IngestError{
			Document: &storage.Document{ID: "d1", Status: storage.DocumentFailed},
			Report:   report,
			Err:      fmt.Errorf("%w: 1 of 2 chunks not stored", indexer.ErrIngestIncomplete),
		}
	}

	t.Run("upload", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(nil, incomplete())

		body, contentType := multipartBody(t, "file", "playbook.md", []byte("# Playbook"))
		req := withParams(httptest.NewRequest(http.MethodPost, "/api/topics/t1/documents", body), "topicID", "t1")
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		NewDocumentHandler(docs).Upload(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var data service.IngestError
		env := decodeEnvelope(t, w, &data)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, "Document ingestion incomplete", env.Message)
		require.NotNil(t, data.Document)
		assert.Equal(t, storage.DocumentFailed, data.Document.Status)
		require.NotNil(t, data.Report)
		assert.Equal(t, report.Chunks, data.Report.Chunks)
	})

	t.Run("reingest", func(t *testing.T) {
		docs := mocks.NewMockDocumentService(ctrl)
		docs.EXPECT().Reingest(gomock.Any(), "d1").Return(nil, &service.IngestError{Report: report, Err: indexer.ErrIngestIncomplete})

		w := httptest.NewRecorder()
		NewDocumentHandler(docs).Reingest(w, withParams(httptest.NewRequest(http.MethodPost, "/api/documents/d1/reingest", nil), "documentID", "d1"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var data service.IngestError
		decodeEnvelope(t, w, &data)
		assert.Nil(t, data.Document)
		require.NotNil(t, data.Report)
		assert.Equal(t, 1, data.Report.Failed)
	})
}
