package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandlerWithStore(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Available").Return(true)

	handler := NewHealthHandler(mockRepo)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "ok", response.Status)
	assert.True(t, response.DB)
}

func TestHealthHandlerStoreless(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Available").Return(false)

	handler := NewHealthHandler(mockRepo)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	// Storeless is degraded, not down.
	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "ok", response.Status)
	assert.False(t, response.DB)
}
