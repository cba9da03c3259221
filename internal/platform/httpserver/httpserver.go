// Package httpserver owns the gateway's HTTP server defaults and its
// drain-on-exit behavior.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

// ShutdownTimeout bounds the graceful drain on exit. It exceeds the slowest
// handler (an argon2id hash plus a store round-trip) with room to spare.
const ShutdownTimeout = 10 * time.Second

// New builds the HTTP server for the voter gateway. The write timeout is
// generous relative to the read side because login handlers hash passwords
// before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Shutdown drains in-flight requests within ShutdownTimeout.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
