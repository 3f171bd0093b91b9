package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/cse340/motors/internal/inventory"
	"github.com/cse340/motors/internal/message"
	"github.com/cse340/motors/pkg/sanitizer"
)

// Home renders the landing page.
func Home(p Page) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section id="hero"><h2>Welcome to `, SiteName, `!</h2>`,
			`<p>Browse our inventory using the navigation above.</p>`,
			`<img src="/images/site/own_today.png" alt="Own today"></section>`)
		return h.err
	}))
}

// Classification renders the vehicle grid of one classification.
func Classification(p Page, vehicles []inventory.Vehicle) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		if len(vehicles) == 0 {
			h.raw(`<p class="notice">Sorry, no matching vehicles could be found.</p>`)
			return h.err
		}
		h.raw(`<ul id="inv-display">`)
		for _, v := range vehicles {
			href := "/inv/detail/" + strconv.Itoa(v.ID)
			h.raw(`<li><a href="`)
			h.url(href)
			h.raw(`" title="View `)
			h.text(v.Make + " " + v.Model)
			h.raw(` details"><img src="`)
			h.url(v.Thumbnail)
			h.raw(`" alt="Image of `)
			h.text(v.Make + " " + v.Model)
			h.raw(` on CSE Motors"></a><div class="namePrice"><hr><h2><a href="`)
			h.url(href)
			h.raw(`">`)
			h.text(v.Make + " " + v.Model)
			h.raw(`</a></h2><span>`)
			h.text(Price(v.Price))
			h.raw(`</span></div></li>`)
		}
		h.raw(`</ul>`)
		return h.err
	}))
}

// Detail renders a single vehicle. The description may carry basic formatting.
func Detail(p Page, v inventory.Vehicle) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section id="vehicle-detail"><img src="`)
		h.url(v.Image)
		h.raw(`" alt="Image of `)
		h.text(v.Title())
		h.raw(`"><div class="specs"><h2>`)
		h.text(v.Make + " " + v.Model + " Details")
		h.raw(`</h2><p class="price"><strong>Price:</strong> `)
		h.text(Price(v.Price))
		h.raw(`</p><div class="description"><strong>Description:</strong> `)
		h.raw(sanitizer.SanitizeHTML(v.Description))
		h.raw(`</div><p><strong>Color:</strong> `)
		h.text(v.Color)
		h.raw(`</p><p><strong>Miles:</strong> `)
		h.text(Miles(v.Miles))
		h.raw(`</p></div></section>`)
		return h.err
	}))
}

// Login renders the login form, keeping the submitted email on failure.
func Login(p Page, email string) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<form id="loginForm" action="/account/login" method="post">`,
			`<label for="account_email">Email</label>`,
			`<input type="email" id="account_email" name="account_email" required value="`)
		h.text(email)
		h.raw(`"><label for="account_password">Password</label>`,
			`<input type="password" id="account_password" name="account_password" required>`,
			`<button type="submit">Login</button></form>`)
		return h.err
	}))
}

// Management renders the account landing page.
func Management(p Page) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if p.Account == nil {
			return nil
		}
		h := &html{w: w}
		h.raw(`<h2>Welcome `)
		h.text(p.Account.FirstName)
		h.raw(`</h2><p>You're logged in.</p>`)
		if p.Account.IsAdmin() {
			h.raw(`<p class="role">`)
			h.text(p.Account.Type)
			h.raw(` account</p>`)
		}
		h.raw(`<ul><li><a href="/message/">Inbox</a></li></ul>`)
		return h.err
	}))
}

// Inbox renders the message list.
func Inbox(p Page, list []message.Summary) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<p>You have `, strconv.Itoa(message.Unread(list)), ` unread message(s).</p>`)
		if len(list) == 0 {
			return h.err
		}
		h.raw(`<table id="inbox"><thead><tr><th>Received</th><th>Subject</th><th>From</th><th>Read</th></tr></thead><tbody>`)
		for _, m := range list {
			h.raw(`<tr><td>`)
			h.text(formatTime(m.Created))
			h.raw(`</td><td><a href="`)
			h.url("/message/view/" + strconv.Itoa(m.ID))
			h.raw(`">`)
			h.text(m.Subject)
			h.raw(`</a></td><td>`)
			h.text(m.From)
			h.raw(`</td><td>`)
			if m.Read {
				h.raw(`Yes`)
			} else {
				h.raw(`No`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	}))
}

// Message renders one message. The markdown body is rendered and sanitized.
func Message(p Page, m message.Message) templ.Component {
	return Layout(p, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		body, err := sanitizer.Markdown(m.Body)
		if err != nil {
			return err
		}
		h := &html{w: w}
		h.raw(`<article class="message"><p><strong>From:</strong> `)
		h.text(m.From)
		h.raw(`</p><p><strong>Received:</strong> `)
		h.text(formatTime(m.Created))
		h.raw(`</p><div class="message-body">`, body, `</div><a href="/message/">Return to inbox</a></article>`)
		return h.err
	}))
}
