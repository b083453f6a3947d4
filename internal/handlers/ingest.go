package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/datos-ingest/internal/models"
	"github.com/PratikDhanave/datos-ingest/internal/requestid"
)

// IngestPath is the only ingest route the service exposes.
const IngestPath = "/api/datos"

// RecordSink receives the observability record of every accepted request.
type RecordSink interface {
	Publish(ctx context.Context, rec models.Record) error
}

// RegisterIngestRoutes registers the ingest endpoint.
//
// POST /api/datos
//   - Body may be any JSON value; no schema is enforced
//   - The whole body must be one JSON value; malformed, empty or trailing
//     bytes are rejected with 400 before anything is logged
//   - Accepted bodies are logged once and acknowledged with {"status":"OK"}
//
// sink may be nil.
func RegisterIngestRoutes(r gin.IRoutes, logger *log.Logger, sink RecordSink) {
	r.POST(IngestPath, func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil || !json.Valid(raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		body, err := decode(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		id := requestid.FromContext(c)
		logger.Printf("[%s] Datos recibidos: %v", id, body)

		if sink != nil {
			publish(c, logger, sink, id, raw)
		}

		c.JSON(http.StatusOK, models.NewAck())
	})
}

// decode parses a validated body. Numbers stay json.Number so large
// integers are logged exactly.
func decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// publish hands the record to the sink. Failures never affect the response.
func publish(c *gin.Context, logger *log.Logger, sink RecordSink, id string, raw []byte) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		logger.Printf("[%s] cannot encode record: %v", id, err)
		return
	}

	rec := models.Record{
		RequestID:  id,
		ReceivedAt: time.Now().UTC(),
		RemoteAddr: c.ClientIP(),
		Body:       compact.Bytes(),
	}

	// The record outlives the request, so detach it from request cancellation.
	if err := sink.Publish(context.WithoutCancel(c.Request.Context()), rec); err != nil {
		logger.Printf("[%s] cannot publish record: %v", id, err)
	}
}
