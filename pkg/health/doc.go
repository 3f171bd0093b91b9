// Package health provides HTTP handlers for health probes.
//
// [LivenessHandler] always answers 200 with the literal body "ok" and never
// touches the database or session store. [ReadinessHandler] runs a set of
// named [Checks] in parallel and answers 503 when any of them fails.
//
//	mux.Handle("/health", health.LivenessHandler())
//	mux.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(provider),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Readiness answers plain text by default. Request JSON with
// Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
package health
