package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	called := false
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		method     string
		wantCalled bool
	}{
		{http.MethodOptions, false},
		{http.MethodPost, true},
	}

	for _, tt := range tests {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/expenses", nil))

		if called != tt.wantCalled {
			t.Errorf("%s: next called = %v, want %v", tt.method, called, tt.wantCalled)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("%s: missing CORS header", tt.method)
		}
	}
}
