package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmercadier/devfeed-be/internal/models"
)

type recordingEventService struct {
	gotLimit int
}

func (s *recordingEventService) Record(eventType, level, message string, themeID *int64) error {
	return nil
}

func (s *recordingEventService) Recent(limit int) ([]models.Event, error) {
	s.gotLimit = limit
	return []models.Event{}, nil
}

func TestEventHandler_GetRecentLimit(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "default when absent", query: "", want: defaultEventLimit},
		{name: "default when malformed", query: "?limit=abc", want: defaultEventLimit},
		{name: "default when negative", query: "?limit=-5", want: defaultEventLimit},
		{name: "passed through in range", query: "?limit=50", want: 50},
		{name: "capped when oversized", query: "?limit=99999", want: maxEventLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &recordingEventService{}
			handler := NewEventHandler(service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/events"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.GetRecent(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, service.gotLimit)
		})
	}
}
