package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestSystemHandlers(t *testing.T) {
	tests := []struct {
		name    string
		server  func(t *testing.T) *testServer
		service string
	}{
		{name: "Quiz", server: newQuizServer, service: "quiz"},
		{name: "JobBoard", server: newJobBoardServer, service: "jobboard"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.server(t)

			w := s.do(http.MethodGet, "/health", nil, "")
			expectStatus(t, w, http.StatusOK)
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
				t.Fatalf("expected json content-type, got %q", ct)
			}
			health := decode[map[string]string](t, w)
			if health["status"] != "ok" || health["service"] != tc.service {
				t.Fatalf("unexpected health body: %v", health)
			}

			w = s.do(http.MethodGet, "/version", nil, "")
			expectStatus(t, w, http.StatusOK)
			version := decode[map[string]string](t, w)
			if version["version"] != "1.0.0" || version["buildTime"] != "now" {
				t.Fatalf("unexpected version body: %v", version)
			}
		})
	}
}
