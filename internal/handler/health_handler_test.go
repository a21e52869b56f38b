package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docextract/internal/handler"
	"docextract/mocks"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(new(mocks.MockUploadRepo))

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := serve(h.Liveness, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	repo.On("Ping", mock.Anything).Return(nil)
	h := handler.NewHealthHandler(repo)

	req, _ := http.NewRequest(http.MethodGet, "/readyz", nil)
	w := serve(h.Readiness, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestHealthHandler_Readiness_StoreDown(t *testing.T) {
	repo := new(mocks.MockUploadRepo)
	repo.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	h := handler.NewHealthHandler(repo)

	req, _ := http.NewRequest(http.MethodGet, "/readyz", nil)
	w := serve(h.Readiness, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
