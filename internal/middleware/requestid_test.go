package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureRequestID(t *testing.T, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/person", nil)
	if header != "" {
		req.Header.Set(HeaderRequestID, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return captured, rec
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	id, rec := captureRequestID(t, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
}

func TestRequestID_HeaderValidation(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantNew bool
	}{
		{name: "alphanumeric with separators", header: "abc-123_DEF.9", wantNew: false},
		{name: "newline", header: "fake\nINJECTED: yes", wantNew: true},
		{name: "carriage return", header: "fake\rINJECTED", wantNew: true},
		{name: "spaces", header: "id with spaces", wantNew: true},
		{name: "too long", header: strings.Repeat("a", 129), wantNew: true},
		{name: "max length", header: strings.Repeat("a", 128), wantNew: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rec := captureRequestID(t, tt.header)
			if tt.wantNew {
				assert.NotEqual(t, tt.header, id)
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.header, id)
			}
			assert.Equal(t, id, rec.Header().Get(HeaderRequestID))
		})
	}
}

func TestRequestIDFromContext_EmptyWithoutMiddleware(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "x", RequestIDFromContext(WithRequestID(context.Background(), "x")))
}
