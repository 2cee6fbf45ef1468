package connection

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestServeReturnsListenError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	done := make(chan error, 1)
	go func() {
		done <- serve(context.Background(), &http.Server{Addr: taken.Addr().String(), Handler: http.NotFoundHandler()})
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("serve on a taken port returned nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not report the listen error")
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
