// Package history records extraction runs for later inspection. Records
// are observability only: command responses are always derived fresh from
// the process result, never served from here.
package history

import "time"

// Record holds the outcome of one extract_inputs invocation.
type Record struct {
	ID       string    `json:"id"`
	Path     string    `json:"path"`
	Inputs   []string  `json:"inputs,omitempty"`
	Error    string    `json:"error,omitempty"`
	Started  time.Time `json:"started"`
	Duration string    `json:"duration"` // human-readable, e.g. "1.2s"
}

// Failed reports whether the recorded run ended in an error.
func (r *Record) Failed() bool { return r.Error != "" }

// Store persists and retrieves extraction records.
type Store interface {
	Save(rec *Record) error
	Load(id string) (*Record, error)
	// Recent returns up to n records, most recent first.
	Recent(n int) ([]*Record, error)
}
