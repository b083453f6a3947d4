package httpserver

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/datos-ingest/internal/handlers"
	"github.com/PratikDhanave/datos-ingest/internal/requestid"
)

const shutdownGrace = 5 * time.Second

// Deps are the collaborators the router hands to its routes.
type Deps struct {
	Logger *log.Logger
	Sink   handlers.RecordSink // optional
}

// NewRouter wires the probes and the ingest endpoint.
// Public: /health, /ready, POST /api/datos
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())

	// A sink that can be pinged gates readiness.
	var deps []handlers.Pinger
	if p, ok := d.Sink.(handlers.Pinger); ok {
		deps = append(deps, p)
	}
	handlers.RegisterHealthRoutes(r, deps...)

	handlers.RegisterIngestRoutes(r, logger, d.Sink)

	return r
}

// ListenAndServe binds addr and serves h until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, logger)
}

// Serve serves h on an already bound listener. The startup line is only
// logged once the socket accepts connections. On ctx cancellation in-flight
// requests get shutdownGrace to finish.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	port := 0
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	logger.Printf("API corriendo en http://localhost:%d", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
