package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"appfiy/backoffice/internal/logging"
)

const maxLoggedBody = 1024

// LogHTTPRequest logs an outbound request at debug level. Top-level JSON
// keys named in redact are masked. The body is restored so the request can
// still be sent.
func LogHTTPRequest(req *http.Request, redact ...string) {
	var bodyCopy []byte
	if req.Body != nil {
		bodyCopy, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy)) // reset body
	}

	logging.Debug("Outbound HTTP request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", RedactJSON(bodyCopy, redact...),
	)
}

// RedactJSON masks the given top-level keys of a JSON object and truncates
// the result. Non-object bodies are only truncated.
func RedactJSON(body []byte, keys ...string) string {
	if len(body) == 0 {
		return ""
	}

	var obj map[string]any
	if len(keys) > 0 && json.Unmarshal(body, &obj) == nil {
		for _, k := range keys {
			if _, ok := obj[k]; ok {
				obj[k] = "***"
			}
		}
		if masked, err := json.Marshal(obj); err == nil {
			body = masked
		}
	}

	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
