// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// fakeServer blocks in ListenAndServe until Shutdown unless startErr is set.
type fakeServer struct {
	startErr    error
	shutdownErr error
	started     chan struct{}
	closed      chan struct{}
	listens     atomic.Int32
	shutdowns   atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), closed: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.startErr != nil {
		return f.startErr
	}
	<-f.closed
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		close(f.closed)
	}
	return f.shutdownErr
}

func (f *fakeServer) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
}

func TestServicesImplementSuture(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ suture.Service = (*DatasetService)(nil)
	var _ suture.Service = (*CacheJanitorService)(nil)
}

func TestNewHTTPServerService_Timeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"explicit", 3 * time.Second, 3 * time.Second},
		{"zero uses default", 0, DefaultShutdownTimeout},
		{"negative uses default", -time.Second, DefaultShutdownTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewHTTPServerService(newFakeServer(), tt.in, zerolog.Nop())
			if svc.shutdownTimeout != tt.want {
				t.Errorf("shutdownTimeout = %v, want %v", svc.shutdownTimeout, tt.want)
			}
			if svc.String() != "http-server" {
				t.Errorf("String() = %q, want http-server", svc.String())
			}
		})
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	bindErr := errors.New("bind: address already in use")
	drainErr := errors.New("context deadline exceeded while draining")

	tests := []struct {
		name          string
		startErr      error
		shutdownErr   error
		cancel        bool
		wantErr       error
		wantShutdowns int32
	}{
		{name: "cancel shuts down", cancel: true, wantErr: context.Canceled, wantShutdowns: 1},
		{name: "listen failure", startErr: bindErr, wantErr: bindErr},
		{name: "shutdown failure", cancel: true, shutdownErr: drainErr, wantErr: drainErr, wantShutdowns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newFakeServer()
			server.startErr = tt.startErr
			server.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			errCh := make(chan error, 1)
			go func() {
				errCh <- svc.Serve(ctx)
			}()

			server.waitStarted(t)
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve did not return")
			}

			if got := server.shutdowns.Load(); got != tt.wantShutdowns {
				t.Errorf("Shutdown calls = %d, want %d", got, tt.wantShutdowns)
			}
		})
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	server := newFakeServer()
	sup := suture.New("test-api", suture.Spec{
		FailureBackoff: 10 * time.Millisecond,
		Timeout:        2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	server.waitStarted(t)
	cancel()
	<-errCh

	if server.listens.Load() != 1 {
		t.Errorf("ListenAndServe calls = %d, want 1", server.listens.Load())
	}
	if server.shutdowns.Load() != 1 {
		t.Errorf("Shutdown calls = %d, want 1", server.shutdowns.Load())
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	server := &http.Server{
		Addr: "127.0.0.1:0",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}
