package main

import (
	"context"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"testing"
	"time"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	// Shut down directly to exercise the graceful path without signals.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	// Send SIGTERM to current process
	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
		// success
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func TestParseWatchlist(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"SPY,QQQ", []string{"SPY", "QQQ"}},
		{" SPY , QQQ ", []string{"SPY", "QQQ"}},
		{"SPY,,QQQ,", []string{"SPY", "QQQ"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		if got := parseWatchlist(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseWatchlist(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
