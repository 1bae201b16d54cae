package server

import (
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHandleAPIHealth_AlwaysReturnsOK(t *testing.T) {
	s := New(Config{Log: zerolog.Nop(), Port: 0})

	req := httptest.NewRequest("GET", "/api-health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
