package server_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/garnizeh/boards/internal/config"
	"github.com/garnizeh/boards/internal/server"
)

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOpenDatabase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		app     string
		table   string
		wantErr bool
	}{
		{name: "Quiz", app: "quiz", table: "quizzes"},
		{name: "JobBoard", app: "jobboard", table: "applications"},
		{name: "Unknown", app: "blog", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{DatabasePath: ":memory:", MigrateOnStart: true}
			d, err := server.OpenDatabase(ctx, cfg, tc.app, discard())
			if tc.wantErr {
				if err == nil {
					d.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenDatabase: %v", err)
			}
			defer d.Close()

			var name string
			if err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, tc.table).Scan(&name); err != nil {
				t.Fatalf("table %s missing: %v", tc.table, err)
			}
		})
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln, 5*time.Second, h, discard()) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
