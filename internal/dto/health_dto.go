package dto

import "time"

// HealthCheckRequest represents request for health check
type HealthCheckRequest struct {
	// No body fields
}

// HealthCheckResponse represents response for health check
type HealthCheckResponse struct {
	Status    string        `json:"status"`
	Service   string        `json:"service"`
	Queue     *QueueHealth  `json:"queue,omitempty"`
	LastSweep *SweepSummary `json:"last_sweep,omitempty"`
}

type QueueHealth struct {
	Depth int64  `json:"depth"`
	Error string `json:"error,omitempty"`
}

// RunSweepRequest triggers a reconciler sweep on demand
type RunSweepRequest struct{}

type SweepSummary struct {
	NodeID     string    `json:"node_id"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Scanned    int       `json:"scanned"`
	Stale      int       `json:"stale"`
	Orphans    []string  `json:"orphans"`
	Requeued   int       `json:"requeued"`
	Skipped    bool      `json:"skipped"`
}
