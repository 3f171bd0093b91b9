package middlewares

import "github.com/cse340/motors/internal/web"

// Cookies returns the stage that exposes every request cookie as a name to value map.
func Cookies() web.Stage {
	return web.NewStage("cookies", func(c web.Context) web.Result {
		c.SetCookies(c.CookieManager().All(c.Request()))
		return web.Continue()
	})
}
