package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/cse340/motors/internal/web"
)

// DefaultBodyLimit caps decoded request bodies at 100 KB.
const DefaultBodyLimit int64 = 100 << 10

// Body returns the stage that decodes JSON and URL-encoded request bodies.
// Other content types pass through untouched. Malformed JSON, or a body over
// limit bytes, halts the chain before any route runs. Form bodies never fail.
func Body(limit int64) web.Stage {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return web.NewStage("body", func(c web.Context) web.Result {
		r := c.Request()
		if r.Body == nil || r.Body == http.NoBody {
			return web.Continue()
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return web.Continue()
		}
		if mediaType != "application/json" && mediaType != "application/x-www-form-urlencoded" {
			return web.Continue()
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Response(), r.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return web.Fail(web.ErrPayloadTooLarge(err))
			}
			return web.Fail(web.ErrBadRequest("could not read request body", err))
		}
		// Later readers see the same bytes.
		r.Body = io.NopCloser(bytes.NewReader(raw))

		if len(bytes.TrimSpace(raw)) == 0 {
			return web.Continue()
		}

		var body web.Body
		switch mediaType {
		case "application/json":
			if err := json.Unmarshal(raw, &body.JSON); err != nil {
				return web.Fail(web.ErrBadRequest("malformed JSON body", err))
			}
		default:
			body.Form = parseForm(string(raw))
		}

		c.SetBody(body)
		return web.Continue()
	})
}

// parseForm splits on "&" only, so ";" stays part of the value. A pair that
// fails to unescape is kept as sent.
func parseForm(raw string) url.Values {
	form := url.Values{}
	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		form.Add(unescapeLenient(key), unescapeLenient(value))
	}
	return form
}

func unescapeLenient(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}
