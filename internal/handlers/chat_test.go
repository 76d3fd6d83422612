package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/rag"
	"salescoach-ai/internal/service"
	"salescoach-ai/internal/service/mocks"
	"salescoach-ai/internal/vectorstore"
)

func TestChatHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		mockSetup   func(*mocks.MockChatService)
		wantStatus  int
		wantEnvelope string
		check       func(*testing.T, rag.AskResponse)
	}{
		{
			name:   "answer with references",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":"How do I handle a price objection?","topic_id":"t1","limit":3}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), service.ChatRequest{Question: "How do I handle a price objection?", TopicID: "t1", Limit: 3}).
					Return(rag.AskResponse{
						Answer:     "Anchor on value before discussing discounts.",
						References: []rag.Reference{{SectionID: "s1", TopicID: "t1", Title: "Objections", Similarity: 0.82}},
					}, nil)
			},
			wantStatus:  http.StatusOK,
			wantEnvelope: "success",
			check: func(t *testing.T, resp rag.AskResponse) {
				if resp.Answer != "Anchor on value before discussing discounts." {
					t.Errorf("ServeHTTP() answer = %q", resp.Answer)
				}
				if len(resp.References) != 1 || resp.References[0].SectionID != "s1" {
					t.Errorf("ServeHTTP() references = %+v", resp.References)
				}
			},
		},
		{
			name:   "debug and rerank flags",
			method: http.MethodPost,
			target: "/api/chat?debug=true",
			body:   `{"question":"Opening lines?","rerank":true}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), service.ChatRequest{Question: "Opening lines?", Rerank: true, Debug: true}).
					Return(rag.AskResponse{Answer: rag.FallbackAnswer, Abstained: true, Debug: &rag.DebugInfo{}}, nil)
			},
			wantStatus:  http.StatusOK,
			wantEnvelope: "success",
			check: func(t *testing.T, resp rag.AskResponse) {
				if !resp.Abstained || resp.Debug == nil {
					t.Errorf("ServeHTTP() response = %+v, want abstained with debug info", resp)
				}
			},
		},
		{
			name:        "method not allowed",
			method:      http.MethodGet,
			target:      "/api/chat",
			mockSetup:   func(m *mocks.MockChatService) {},
			wantStatus:  http.StatusMethodNotAllowed,
			wantEnvelope: "error",
		},
		{
			name:        "invalid JSON",
			method:      http.MethodPost,
			target:      "/api/chat",
			body:        "invalid json",
			mockSetup:   func(m *mocks.MockChatService) {},
			wantStatus:  http.StatusBadRequest,
			wantEnvelope: "error",
		},
		{
			name:        "empty body",
			method:      http.MethodPost,
			target:      "/api/chat",
			mockSetup:   func(m *mocks.MockChatService) {},
			wantStatus:  http.StatusBadRequest,
			wantEnvelope: "error",
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":""}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(rag.AskResponse{}, &service.ValidationError{Field: "question", Message: "cannot be empty"})
			},
			wantStatus:  http.StatusBadRequest,
			wantEnvelope: "error",
		},
		{
			name:   "unknown topic",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":"Hello","topic_id":"missing"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(rag.AskResponse{}, fmt.Errorf("topic %w", service.ErrNotFound))
			},
			wantStatus:  http.StatusNotFound,
			wantEnvelope: "error",
		},
		{
			name:   "search failure",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":"Hello"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(rag.AskResponse{}, fmt.Errorf("failed to answer question: %w: connection refused", rag.ErrSearch))
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantEnvelope: "error",
		},
		{
			name:   "completion failure",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":"Hello"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(rag.AskResponse{}, fmt.Errorf("failed to answer question: %w: 500", rag.ErrCompletion))
			},
			wantStatus:  http.StatusBadGateway,
			wantEnvelope: "error",
		},
		{
			name:   "unexpected error",
			method: http.MethodPost,
			target: "/api/chat",
			body:   `{"question":"Hello"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Ask(gomock.Any(), gomock.Any()).
					Return(rag.AskResponse{}, errors.New("boom"))
			},
			wantStatus:  http.StatusInternalServerError,
			wantEnvelope: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)

			handler := NewChatHandler(mockChatService)

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			var resp rag.AskResponse
			env := decodeEnvelope(t, w, &resp)
			if env.Status != tt.wantEnvelope {
				t.Errorf("ServeHTTP() envelope status = %v, want %v", env.Status, tt.wantEnvelope)
			}
			if tt.wantEnvelope == "error" && env.Message == "" {
				t.Error("ServeHTTP() error envelope has no message")
			}
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestChatHandler_handleStreamingChat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		mockSetup   func(*mocks.MockChatService)
		wantStatus  int
		wantSSE     bool
		wantContain []string
	}{
		{
			name: "chunks then references",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAsk(gomock.Any(), service.ChatRequest{Question: "Hello"}, gomock.Any()).
					DoAndReturn(func(ctx context.Context, req service.ChatRequest, callback func(chunk string) error) ([]rag.Reference, error) {
						for _, chunk := range []string{"Lead", " with", " value"} {
							if err := callback(chunk); err != nil {
								return nil, err
							}
						}
						return []rag.Reference{{SectionID: "s1", Title: "Value selling"}}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantSSE:    true,
			wantContain: []string{
				"data: Lead\n\n",
				"data:  with\n\n",
				"event: references\ndata: [{\"section_id\":\"s1\"",
				"data: [DONE]\n\n",
			},
		},
		{
			name: "multi-line chunk",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAsk(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req service.ChatRequest, callback func(chunk string) error) ([]rag.Reference, error) {
						return nil, callback("first\nsecond")
					})
			},
			wantStatus:  http.StatusOK,
			wantSSE:     true,
			wantContain: []string{"data: first\ndata: second\n\n", "data: [DONE]\n\n"},
		},
		{
			name: "fallback answer without chunks",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAsk(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			wantStatus:  http.StatusOK,
			wantSSE:     true,
			wantContain: []string{"event: references\ndata: null\n\n", "data: [DONE]\n\n"},
		},
		{
			name: "error before first chunk",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAsk(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "question", Message: "cannot be empty"})
			},
			wantStatus:  http.StatusBadRequest,
			wantContain: []string{`"status":"error"`},
		},
		{
			name: "error after streaming started",
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					StreamAsk(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req service.ChatRequest, callback func(chunk string) error) ([]rag.Reference, error) {
						_ = callback("Partial")
						return nil, fmt.Errorf("%w: stream reset", rag.ErrCompletion)
					})
			},
			wantStatus: http.StatusOK,
			wantSSE:    true,
			wantContain: []string{
				"data: Partial\n\n",
				"event: error\ndata: {\"status\":\"error\",\"message\":\"Language model error\"}\n\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)

			handler := NewChatHandler(mockChatService)

			req := httptest.NewRequest(http.MethodPost, "/api/chat?stream=true", bytes.NewBufferString(`{"question":"Hello"}`))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("handleStreamingChat() status = %v, want %v", w.Code, tt.wantStatus)
			}
			isSSE := w.Header().Get("Content-Type") == "text/event-stream"
			if isSSE != tt.wantSSE {
				t.Errorf("handleStreamingChat() Content-Type = %q, want SSE %v", w.Header().Get("Content-Type"), tt.wantSSE)
			}
			body := w.Body.String()
			for _, want := range tt.wantContain {
				if !strings.Contains(body, want) {
					t.Errorf("handleStreamingChat() body = %q, want it to contain %q", body, want)
				}
			}
			if strings.Contains(body, "event: error") && strings.Contains(body, "[DONE]") {
				t.Error("handleStreamingChat() sent [DONE] after an error event")
			}
		})
	}
}

func TestChatHandler_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		body       string
		mockSetup  func(*mocks.MockChatService)
		wantStatus int
		wantCount  int
	}{
		{
			name: "results",
			body: `{"query":"discovery questions","topic_id":"t1","limit":2}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Search(gomock.Any(), service.SearchRequest{Query: "discovery questions", TopicID: "t1", Limit: 2}).
					Return([]vectorstore.SearchResult{{ID: "s1", Similarity: 0.9}, {ID: "s2", Similarity: 0.7}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "invalid JSON",
			body:       "{",
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "limit out of range",
			body: `{"query":"discovery","limit":99}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "limit", Message: "must be between 0 and 20"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "embedding failure",
			body: `{"query":"discovery"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Search(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: unauthorized", rag.ErrEmbedding))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)

			handler := NewChatHandler(mockChatService)

			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Search(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Search() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp SearchResponse
			decodeEnvelope(t, w, &resp)
			if len(resp.Results) != tt.wantCount {
				t.Errorf("Search() results = %d, want %d", len(resp.Results), tt.wantCount)
			}
		})
	}
}

func TestWriteEvent(t *testing.T) {
	w := httptest.NewRecorder()
	if err := writeEvent(w, "references", "[]"); err != nil {
		t.Fatalf("writeEvent() error = %v", err)
	}
	if got := w.Body.String(); got != "event: references\ndata: []\n\n" {
		t.Errorf("writeEvent() = %q", got)
	}

	w = httptest.NewRecorder()
	_ = writeEvent(w, "", "one\ntwo")
	if got := w.Body.String(); got != "data: one\ndata: two\n\n" {
		t.Errorf("writeEvent() = %q", got)
	}
}
