package httpserver

import (
	"net/http"
	"time"

	"passprove/internal/platform/config"
)

// New builds an HTTP server with sane defaults for this project.
func New(cfg config.Server, handler http.Handler) *http.Server {
	readHeader := cfg.ReadHeaderTimeout
	if readHeader <= 0 {
		readHeader = 5 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeader,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
