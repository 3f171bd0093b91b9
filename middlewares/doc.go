// Package middlewares provides the request stages every page runs through
// before routing, plus route middleware for protected pages.
//
// The stage order is fixed:
//
//	app := web.New(
//	    web.WithStages(
//	        middlewares.RequestID(),
//	        middlewares.Session(store),
//	        middlewares.Flash(),
//	        middlewares.Body(middlewares.DefaultBodyLimit),
//	        middlewares.Cookies(),
//	        middlewares.AuthToken(tokens),
//	    ),
//	)
//
// # Request ID
//
// RequestID reuses X-Request-ID (or X-Correlation-ID) from the request or
// generates a UUIDv7. Pass RequestIDExtractor to logger.NewFromConfig so
// every log line written with the request context carries request_id.
//
// # Session
//
// Session resolves the signed session cookie to a stored session or starts a
// new one, which is saved before the request continues. Store failures fail
// the request with a 500. The session is saved again before the response is written.
//
// # Flash
//
// Flash exposes queued flash messages to the views. They are consumed the
// first time a view reads them.
//
// # Body
//
// Body decodes application/json and application/x-www-form-urlencoded bodies
// up to a size limit. Malformed input yields 400, oversized input 413.
//
// # Cookies
//
// Cookies exposes every request cookie as a map.
//
// # AuthToken
//
// AuthToken verifies the access token from the Authorization header or the
// jwt cookie. Invalid tokens are dropped and the request continues anonymously.
// RequireLogin guards individual routes:
//
//	r.GET("/", h.Management, middlewares.RequireLogin("/account/login"))
package middlewares
