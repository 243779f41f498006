package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appfiy/backoffice/internal/constants"
)

func TestHTTPPushProvider_Send_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}

		var msg PushMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if msg.Platform != constants.PlatformAndroid || msg.Content != "Build ready" {
			t.Errorf("Unexpected payload: %+v", msg)
		}

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	provider := NewHTTPPushProvider(5 * time.Second)
	status, err := provider.Send(context.Background(), server.URL, PushMessage{
		Platform:   constants.PlatformAndroid,
		SiteURL:    "https://shop.example.com",
		LicenseKey: "LIC-1",
		Content:    "Build ready",
	})

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if status != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", status)
	}
}

func TestHTTPPushProvider_Send_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	provider := NewHTTPPushProvider(5 * time.Second)
	status, err := provider.Send(context.Background(), server.URL, PushMessage{Content: "x"})

	if status != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", status)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if perr.Code != ErrCodeRemoteError || perr.Details != "upstream down" {
		t.Errorf("Unexpected error: %+v", perr)
	}
}

func TestHTTPPushProvider_Send_EmptyURL(t *testing.T) {
	provider := NewHTTPPushProvider(time.Second)
	_, err := provider.Send(context.Background(), "", PushMessage{})

	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Code != ErrCodeInvalidTarget {
		t.Fatalf("Expected invalid target error, got %v", err)
	}
}

func TestHTTPPushProvider_Send_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewHTTPPushProvider(time.Second)
	if _, err := provider.Send(ctx, server.URL, PushMessage{}); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
