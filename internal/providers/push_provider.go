package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"appfiy/backoffice/internal/common"
	"appfiy/backoffice/internal/constants"
)

const (
	ErrCodeInvalidTarget = "INVALID_TARGET"
	ErrCodeNetworkError  = "NETWORK_ERROR"
	ErrCodeRemoteError   = "REMOTE_ERROR"
)

// ProviderError is returned by outbound integrations.
type ProviderError struct {
	Code       string
	Message    string
	Details    string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PushMessage is the body posted to a build domain's push endpoint.
type PushMessage struct {
	Platform    constants.Platform `json:"platform"`
	SiteURL     string             `json:"site_url"`
	LicenseKey  string             `json:"license_key"`
	PackageName string             `json:"package_name,omitempty"`
	Content     string             `json:"content"`
}

// PushProvider delivers a build notification to one platform endpoint.
type PushProvider interface {
	Send(ctx context.Context, targetURL string, msg PushMessage) (int, error)
}

// HTTPPushProvider posts JSON to the configured push notification URLs.
type HTTPPushProvider struct {
	Client *http.Client
}

func NewHTTPPushProvider(timeout time.Duration) *HTTPPushProvider {
	return &HTTPPushProvider{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send returns the HTTP status of the push endpoint. Any status outside 2xx
// is reported as a *ProviderError.
func (p *HTTPPushProvider) Send(ctx context.Context, targetURL string, msg PushMessage) (int, error) {
	if targetURL == "" {
		return 0, &ProviderError{
			Code:    ErrCodeInvalidTarget,
			Message: "push notification url is empty",
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "Failed to marshal push payload",
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(payload))
	if err != nil {
		return 0, &ProviderError{
			Code:    ErrCodeInvalidTarget,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	common.LogHTTPRequest(req, "license_key")

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "Push endpoint unreachable",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return resp.StatusCode, &ProviderError{
			Code:       ErrCodeRemoteError,
			Message:    fmt.Sprintf("push endpoint returned %d", resp.StatusCode),
			Details:    string(body),
			StatusCode: resp.StatusCode,
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
