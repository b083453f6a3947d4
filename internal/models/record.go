package models

import (
	"encoding/json"
	"time"
)

// StatusOK is the only status the ingest endpoint ever acknowledges with.
const StatusOK = "OK"

// Ack is returned by POST /api/datos.
type Ack struct {
	Status string `json:"status"`
}

// NewAck builds a fresh acknowledgement for one request.
func NewAck() Ack {
	return Ack{Status: StatusOK}
}

// Record is the observability record emitted for every accepted request.
// Body holds the received JSON bytes, compacted but otherwise untouched;
// it is never stored.
type Record struct {
	RequestID  string          `json:"request_id"`
	ReceivedAt time.Time       `json:"received_at"`
	RemoteAddr string          `json:"remote_addr,omitempty"`
	Body       json.RawMessage `json:"body"`
}
