package entities

import "time"

// DependencyStatus is one checked backend in the health report.
type DependencyStatus struct {
	Status    string `json:"status"`
	Backend   string `json:"backend"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (d DependencyStatus) Healthy() bool {
	return d.Status == "ok"
}

type HealthReport struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	UpSince      time.Time                   `json:"up_since"`
	Uptime       string                      `json:"uptime"`
}
