// Package web is the request lifecycle of the site.
//
// An [App] answers the health probes directly, serves static assets, then runs
// a [Pipeline] of stages (session, flash, body, cookies, auth token) that each
// return [Continue], [Respond] or [Fail]. Requests that pass every stage go to
// the [Dispatcher], an ordered list of prefix registrations where the first
// segment-aligned match wins. Anything that fails, including unmatched paths and
// recovered panics, ends in the single [ErrorHandler].
//
//	d := web.NewDispatcher()
//	d.Handle("/inv", func(r web.Router) {
//	    r.GET("/type/{id}", inventory.ByClassification)
//	})
//
//	app := web.New(
//	    web.WithLogger(log),
//	    web.WithStages(stages...),
//	    web.WithDispatcher(d),
//	    web.WithErrorHandler(web.NewErrorHandler(nav.Links, views.ErrorPage, log)),
//	)
//	err := web.Run(app, web.Address(cfg.ListenAddr()), web.ShutdownHook(db.Shutdown(provider)))
//
// Only not-found errors show their own message to visitors; every other
// failure renders [GenericMessage].
package web
