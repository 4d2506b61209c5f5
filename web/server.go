package web

import (
	"platform_api/config"
	"strconv"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// NewServer builds the API server with its middleware and routes.
// Only GET on the exact paths below is routed; anything else, including
// "/health/" or "//", gets a not-found response.
func NewServer(cfg config.Config) *rweb.Server {
	s := rweb.NewServer(rweb.ServerOptions{
		Address: cfg.Address(),
		Verbose: cfg.Verbose,
		URLOptions: rweb.URLOptions{
			KeepTrailingSlashes: true,
		},
	})

	if cfg.Verbose {
		s.Use(rweb.RequestInfo)
	}
	s.Use(requestLog)
	s.Use(corsAllowAll)
	s.Use(exactPath)

	s.Get("/", rootHandler)
	s.Get("/health", healthHandler)
	s.Get("/test", testHandler(cfg.Environment))

	return s
}

// StartWebServer runs the API server until it stops.
// A non-nil error means the listener could not be set up.
func StartWebServer(cfg config.Config) error {
	s := NewServer(cfg)

	logger.Info("Starting server", "port", strconv.Itoa(cfg.Port), "host", cfg.Host)

	if err := s.Run(); err != nil {
		return serr.Wrap(err, "failed to listen on "+cfg.Address())
	}
	return nil
}
