package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
)

func TestBearerAuth(t *testing.T) {
	handler := bearerAuth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	srv := &treeServer{cli: testCLI()}

	tests := []struct {
		name   string
		code   kterrors.Code
		status int
	}{
		{"invalid input", kterrors.ErrCodeInvalidInput, http.StatusBadRequest},
		{"bad device", kterrors.ErrCodeInvalidDevice, http.StatusBadRequest},
		{"not found", kterrors.ErrCodeNotFound, http.StatusNotFound},
		{"unauthorized", kterrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"internal", kterrors.ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.writeError(rec, kterrors.New(tt.code, "boom"))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), string(tt.code)) {
				t.Errorf("body should carry the error code, got %s", rec.Body.String())
			}
		})
	}
}
