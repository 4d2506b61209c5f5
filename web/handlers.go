package web

import (
	"platform_api/util"

	"github.com/rohanthewiz/rweb"
)

const (
	apiName    = "Main Platform API"
	apiVersion = "1.0.0"
	testMsg    = "API Test Endpoint"
)

// Response bodies. Field order here is the order on the wire.

type rootResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"` // seconds
	Timestamp string  `json:"timestamp"`
}

type testResponse struct {
	Message     string  `json:"message"`
	Environment *string `json:"environment,omitempty"` // omitted when unset
	Timestamp   string  `json:"timestamp"`
}

func rootHandler(ctx rweb.Context) error {
	return ctx.WriteJSON(rootResponse{
		Message:   apiName,
		Version:   apiVersion,
		Timestamp: util.NowISO(),
	})
}

func healthHandler(ctx rweb.Context) error {
	return ctx.WriteJSON(healthResponse{
		Status:    "ok",
		Uptime:    util.Uptime(),
		Timestamp: util.NowISO(),
	})
}

// testHandler echoes the configured environment name
func testHandler(environment *string) func(ctx rweb.Context) error {
	return func(ctx rweb.Context) error {
		return ctx.WriteJSON(testResponse{
			Message:     testMsg,
			Environment: environment,
			Timestamp:   util.NowISO(),
		})
	}
}
