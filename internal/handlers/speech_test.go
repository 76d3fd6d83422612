package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"salescoach-ai/internal/service"
	"salescoach-ai/internal/service/mocks"
)

func TestSpeechHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		body       string
		mockSetup  func(*mocks.MockSpeechService)
		wantStatus int
		wantType   string
	}{
		{
			name: "audio",
			body: `{"text":"Thanks for your time today.","voice":"nova"}`,
			mockSetup: func(m *mocks.MockSpeechService) {
				m.EXPECT().
					Synthesize(gomock.Any(), service.SpeechRequest{Text: "Thanks for your time today.", Voice: "nova"}).
					Return([]byte("ID3audio"), nil)
			},
			wantStatus: http.StatusOK,
			wantType:   "audio/mpeg",
		},
		{
			name:       "invalid body",
			body:       `text`,
			mockSetup:  func(m *mocks.MockSpeechService) {},
			wantStatus: http.StatusBadRequest,
			wantType:   "application/json",
		},
		{
			name: "text too long",
			body: `{"text":"x"}`,
			mockSetup: func(m *mocks.MockSpeechService) {
				m.EXPECT().
					Synthesize(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "text", Message: "too long"})
			},
			wantStatus: http.StatusBadRequest,
			wantType:   "application/json",
		},
		{
			name: "provider failure",
			body: `{"text":"Hello"}`,
			mockSetup: func(m *mocks.MockSpeechService) {
				m.EXPECT().
					Synthesize(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("failed to synthesize speech: %w", service.ErrExternalService))
			},
			wantStatus: http.StatusBadGateway,
			wantType:   "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockSpeechService(ctrl)
			tt.mockSetup(m)

			req := httptest.NewRequest(http.MethodPost, "/api/tts", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			NewSpeechHandler(m).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("ServeHTTP() Content-Type = %v, want %v", got, tt.wantType)
			}
			if tt.wantStatus == http.StatusOK && w.Body.String() != "ID3audio" {
				t.Errorf("ServeHTTP() body = %q, want audio bytes", w.Body.String())
			}
		})
	}
}
