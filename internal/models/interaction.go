package models

import "time"

// Interaction is one resolved chat exchange, persisted for auditing and the
// status endpoint.
type Interaction struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Language   string    `json:"language"`
	Intent     string    `json:"intent"`
	Strategy   string    `json:"strategy"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
