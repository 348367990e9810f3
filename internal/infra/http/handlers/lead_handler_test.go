package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/leadgrid/ingestion-api/internal/entity"
	"github.com/leadgrid/ingestion-api/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.ListFilter, limit, offset int) ([]entity.Lead, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Count(ctx context.Context, filter entity.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountBySource(ctx context.Context) ([]entity.SourceCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SourceCount), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLeadHandler(repo entity.LeadRepositoryInterface) *LeadHandler {
	return NewLeadHandler(usecase.NewIngestLeadUseCase(repo, nil, testLogger()), testLogger())
}

func TestIngestHandlerSuccess(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	mockRepo := new(MockLeadRepository)
	mockRepo.On("Available").Return(true)
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		lead := args.Get(1).(*entity.Lead)
		lead.ID = 1
		lead.CreatedAt = createdAt
	}).Return(nil)

	handler := newLeadHandler(mockRepo)

	body, _ := json.Marshal(usecase.IngestLeadInput{
		Email:   "a@x.com",
		Name:    "A",
		Company: "C1",
		Website: "https://x.com",
		Phone:   "555-0100",
	})
	req := httptest.NewRequest("POST", "/v1/lead", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                     `json:"success"`
		Data    usecase.IngestLeadOutput `json:"data"`
		Message string                   `json:"message"`
	}
	json.NewDecoder(w.Body).Decode(&response)

	assert.True(t, response.Success)
	assert.Equal(t, int64(1), response.Data.ID)
	assert.Contains(t, response.Data.CorrelationID, "manual-")
	assert.Contains(t, response.Data.CorrelationID, "a@x.com")
	assert.Equal(t, "Lead received", response.Message)
}

func TestIngestHandlerInvalidJSON(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	handler := newLeadHandler(mockRepo)

	req := httptest.NewRequest("POST", "/v1/lead", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Upsert")
}

func TestIngestHandlerStoreless(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Available").Return(false)

	handler := newLeadHandler(mockRepo)

	body, _ := json.Marshal(usecase.IngestLeadInput{Email: "a@x.com"})
	req := httptest.NewRequest("POST", "/v1/lead", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response Response
	json.NewDecoder(w.Body).Decode(&response)
	assert.False(t, response.Success)
}

func TestIngestHandlerStoreFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("Available").Return(true)
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("constraint violated"))

	handler := newLeadHandler(mockRepo)

	body, _ := json.Marshal(usecase.IngestLeadInput{Email: "a@x.com"})
	req := httptest.NewRequest("POST", "/v1/lead", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Ingest(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
