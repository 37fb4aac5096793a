package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServeAllFirstFailureStopsOthers(t *testing.T) {
	errBind := errors.New("bind failed")
	stopped := make(chan struct{})

	servers := []func(context.Context) error{
		func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return nil
		},
		func(context.Context) error { return errBind },
	}

	done := make(chan error, 1)
	go func() { done <- serveAll(context.Background(), servers) }()

	select {
	case err := <-done:
		if !errors.Is(err, errBind) {
			t.Errorf("serveAll() = %v, want %v", err, errBind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serveAll did not return after a server failed")
	}

	select {
	case <-stopped:
	default:
		t.Error("healthy server was not stopped")
	}
}

func TestServeAllReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	servers := []func(context.Context) error{
		func(ctx context.Context) error { <-ctx.Done(); return nil },
		func(ctx context.Context) error { <-ctx.Done(); return nil },
	}

	done := make(chan error, 1)
	go func() { done <- serveAll(ctx, servers) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serveAll() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serveAll did not return after cancel")
	}
}
