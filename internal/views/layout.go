// Package views holds the page components. Every page is wrapped by Layout.
package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/session"
	"github.com/cse340/motors/pkg/token"
)

// SiteName is shown in the header and page titles.
const SiteName = "CSE Motors"

// Page is the data every layout render needs.
type Page struct {
	Account *token.Identity
	Title   string
	Nav     []web.NavLink
	Flashes []session.Flash
}

// Layout wraps body in the site chrome: header, navigation, flash messages and footer.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		h.text(p.Title)
		h.raw(` | `, SiteName, `</title>`,
			`<link href="/css/styles.css" rel="stylesheet" media="screen"></head><body><div id="wrapper">`)

		header(h, p.Account)
		navigation(h, p.Nav)

		h.raw(`<main><h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		flashes(h, p.Flashes)
		h.component(ctx, body)
		h.raw(`</main><footer><p>&copy; `, SiteName, `</p></footer></div></body></html>`)
		return h.err
	})
}

func header(h *html, account *token.Identity) {
	h.raw(`<header id="top-header"><span class="siteName"><a href="/" title="Return to home page">`, SiteName, `</a></span>`,
		`<div id="tools">`)
	if account == nil {
		h.raw(`<a title="Click to log in" href="/account/login">My Account</a>`)
	} else {
		h.raw(`<a title="Manage your account" href="/account/">Welcome `)
		h.text(account.FirstName)
		h.raw(`</a> <a title="Click to log out" href="/account/logout">Logout</a>`)
	}
	h.raw(`</div></header>`)
}

func navigation(h *html, links []web.NavLink) {
	h.raw(`<nav><ul>`)
	for _, l := range links {
		h.raw(`<li><a href="`)
		h.url(l.Href)
		h.raw(`" title="`)
		h.text(l.Title)
		h.raw(`">`)
		h.text(l.Label)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul></nav>`)
}

func flashes(h *html, list []session.Flash) {
	if len(list) == 0 {
		return
	}
	h.raw(`<ul class="flash">`)
	for _, f := range list {
		h.raw(`<li class="flash-`)
		h.text(f.Kind)
		h.raw(`">`)
		h.text(f.Text)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}

// ErrorPage renders the uniform error view.
func ErrorPage(v web.ErrorView) templ.Component {
	return Layout(Page{Title: v.Title, Nav: v.Nav}, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<p class="error-message">`)
		h.text(v.Message)
		h.raw(`</p>`)
		return h.err
	}))
}
