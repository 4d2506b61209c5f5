package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

const (
	headerOrigin       = "Origin"
	headerRequestID    = "X-Request-Id"
	headerReqMethod    = "Access-Control-Request-Method"
	headerReqHeaders   = "Access-Control-Request-Headers"
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerAllowHeaders = "Access-Control-Allow-Headers"
	headerVary         = "Vary"
	corsAllowedMethods = "GET,HEAD,POST"
	methodOptions      = "OPTIONS"
	statusNoContent    = 204
	statusNotFound     = 404
)

// corsAllowAll reflects any request Origin back as allowed.
// Preflights are answered here and never reach the router.
func corsAllowAll(ctx rweb.Context) error {
	req := ctx.Request()

	origin := req.Header(headerOrigin)
	if origin == "" {
		return ctx.Next()
	}

	ctx.Response().SetHeader(headerAllowOrigin, origin)
	ctx.Response().SetHeader(headerVary, headerOrigin)

	if req.Method() == methodOptions && req.Header(headerReqMethod) != "" {
		ctx.Response().SetHeader(headerAllowMethods, corsAllowedMethods)
		if hdrs := req.Header(headerReqHeaders); hdrs != "" {
			ctx.Response().SetHeader(headerAllowHeaders, hdrs)
		}
		ctx.Status(statusNoContent)
		return nil
	}

	return ctx.Next()
}

// exactPath answers 404 for paths with a trailing or doubled slash so they
// cannot reach a route registered without one.
func exactPath(ctx rweb.Context) error {
	path := ctx.Request().Path()
	if path != "/" && (strings.HasSuffix(path, "/") || strings.Contains(path, "//")) {
		ctx.Status(statusNotFound)
		return nil
	}
	return ctx.Next()
}

// requestLog tags each response with the caller's X-Request-Id, or a new
// one, and writes one structured line per request.
func requestLog(ctx rweb.Context) error {
	start := time.Now()

	id := ctx.Request().Header(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Response().SetHeader(headerRequestID, id)

	err := ctx.Next()

	logger.Info("request completed",
		"method", ctx.Request().Method(),
		"path", ctx.Request().Path(),
		"status", strconv.Itoa(ctx.Response().Status()),
		"duration", time.Since(start).String(),
		"requestId", id,
	)
	return err
}
