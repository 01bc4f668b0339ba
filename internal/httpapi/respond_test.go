package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/domain"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("order 1: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("bad: %w", domain.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("cart: %w", domain.ErrEmptyCart), http.StatusBadRequest},
		{fmt.Errorf("stock: %w", domain.ErrInsufficientStock), http.StatusBadRequest},
		{fmt.Errorf("table: %w", domain.ErrTableUnavailable), http.StatusBadRequest},
		{fmt.Errorf("nope: %w", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("dup: %w", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("pg: connection refused to 10.0.0.5"))

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Detail)
}

func TestWriteErrorExposesDomainDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("Mesa 4 (disponible: 0): %w", domain.ErrInsufficientStock))

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "Mesa 4")
}

func TestDecodeBodyInvalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	var dst struct{}
	err := decodeBody(r, &dst)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/?token=qry456", nil)
	assert.Equal(t, "qry456", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(r))
}
