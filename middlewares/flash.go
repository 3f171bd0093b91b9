package middlewares

import "github.com/cse340/motors/internal/web"

// Flash returns the stage that projects the session's queued flash messages
// into the render context. They are consumed on first read, so a request that
// renders nothing leaves them for the next page.
func Flash() web.Stage {
	return web.NewStage("flash", func(c web.Context) web.Result {
		sess := c.Session()
		if sess == nil {
			return web.Continue()
		}
		c.SetFlashSource(sess.ConsumeFlashes)
		return web.Continue()
	})
}
