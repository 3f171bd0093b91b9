package views

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	textmsg "golang.org/x/text/message"
)

var printer = textmsg.NewPrinter(language.AmericanEnglish)

// Price formats a whole-dollar amount, e.g. "$65,000".
func Price(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// Miles formats an odometer reading, e.g. "15,000".
func Miles(n int) string {
	return printer.Sprintf("%d", n)
}

// formatTime formats a time.Time for display.
func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// html writes markup and remembers the first error, so components can write
// a sequence of fragments and check once.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

// text writes s escaped for element content and attribute values.
func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

// url writes a sanitized, escaped URL.
func (h *html) url(s string) {
	h.raw(templ.EscapeString(string(templ.URL(s))))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
