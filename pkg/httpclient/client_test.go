// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	config := Config{
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryDelay:   500 * time.Millisecond,
		RetryBackoff: true,
	}

	client := NewClient(config)

	if client.config.MaxRetries != config.MaxRetries {
		t.Errorf("Expected max retries %d, got %d", config.MaxRetries, client.config.MaxRetries)
	}
	if client.httpClient.Timeout != config.Timeout {
		t.Errorf("Expected HTTP client timeout %v, got %v", config.Timeout, client.httpClient.Timeout)
	}
}

func TestClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected JSON accept header, got %q", r.Header.Get("Accept"))
		}
		if r.Header.Get("Custom-Header") != "custom-value" {
			t.Errorf("Expected custom header, got %q", r.Header.Get("Custom-Header"))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 5 * time.Second})

	resp, err := client.Get(context.Background(), server.URL, map[string]string{"Custom-Header": "custom-value"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"data": []}` {
		t.Errorf("Unexpected body %q", string(resp.Body))
	}
}

func TestClient_Get_NotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "not found"}`))
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 5 * time.Second, MaxRetries: 3, RetryDelay: time.Millisecond})

	resp, err := client.Get(context.Background(), server.URL, nil)
	if err == nil {
		t.Fatal("Expected error for 404 status, got none")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", statusErr.StatusCode)
	}
	if string(statusErr.Body) != `{"error": "not found"}` {
		t.Errorf("Expected body to be kept, got %q", string(statusErr.Body))
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected the response to be returned with the error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected client errors not to be retried, got %d calls", calls)
	}
}

func TestClient_Retry_ServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "server error"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})

	resp, err := client.Get(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("Expected no error after retries, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code 200, got %d", resp.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 calls (2 failures + 1 success), got %d", calls)
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{Timeout: time.Second})

	_, err := client.Get(context.Background(), url, nil)
	if err == nil {
		t.Fatal("Expected transport error, got none")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T", err)
	}
}

func TestClient_CancelledContextIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: time.Second, MaxRetries: 5, RetryDelay: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, server.URL, nil)
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("Expected no request with a cancelled context, got %d", calls)
	}
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"test": "data"}` {
			t.Errorf("Unexpected body %q", string(body))
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(DefaultConfig())

	resp, err := client.Request(context.Background(), http.MethodPost, server.URL, strings.NewReader(`{"test": "data"}`), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status code 201, got %d", resp.StatusCode)
	}
}

func TestClient_CustomTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "injected" {
			t.Errorf("Expected header injected by transport, got %q", r.Header.Get("X-Test"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout: time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			r.Header.Set("X-Test", "injected")
			return http.DefaultTransport.RoundTrip(r)
		}),
	})

	if _, err := client.Get(context.Background(), server.URL, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", config.Timeout)
	}
	if config.MaxRetries != 2 {
		t.Errorf("Expected default max retries 2, got %d", config.MaxRetries)
	}
	if !config.RetryBackoff {
		t.Error("Expected default retry backoff to be true")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
