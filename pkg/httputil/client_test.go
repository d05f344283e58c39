package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "causeway-test" {
			t.Errorf("User-Agent = %q, want causeway-test", got)
		}
		w.Write([]byte(`{"name":"test"}`))
	}))
	defer srv.Close()

	c := NewClient(map[string]string{"User-Agent": "causeway-test"})
	var out struct {
		Name string `json:"name"`
	}
	if err := c.GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "test" {
		t.Errorf("Name = %q, want test", out.Name)
	}
}

func TestClientGetText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nodes:\n  - id: a\n"))
	}))
	defer srv.Close()

	c := NewClient(nil)
	got, err := c.GetText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "nodes:\n  - id: a\n" {
		t.Errorf("body = %q", got)
	}
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(nil)
	_, err := c.GetText(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{http: srv.Client()}
	var got string
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		body, err := c.doRequest(context.Background(), srv.URL, nil)
		if err != nil {
			return err
		}
		defer body.Close()
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		got = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("body = %q, want ok", got)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(nil)
	_, err := c.GetText(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("want error for 403")
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1 (no retry)", calls.Load())
	}
}

func TestRetryOnlyRetryable(t *testing.T) {
	attempts := 0
	sentinel := errors.New("permanent")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("want sentinel error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("non-retryable error attempted %d times, want 1", attempts)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}
