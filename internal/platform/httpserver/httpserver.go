package httpserver

import (
	"net/http"
	"time"
)

// defaultReadHeaderTimeout bounds header reads when no timeout is configured,
// so idle or trickling clients cannot pin connections open.
const defaultReadHeaderTimeout = 5 * time.Second

// New builds the HTTP server for the decision API. readHeaderTimeout comes
// from config.Server; non-positive values fall back to the default.
func New(addr string, handler http.Handler, readHeaderTimeout time.Duration) *http.Server {
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = defaultReadHeaderTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
