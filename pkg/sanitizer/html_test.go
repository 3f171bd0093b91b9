package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "strips all tags", input: `<p>Hello <strong>world</strong></p>`, expected: "Hello world"},
		{name: "strips event handlers", input: `<img src="x" onerror="alert('xss')">`, expected: ""},
		{name: "plain text unchanged", input: "Hello world", expected: "Hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "keeps formatting", input: `<p>Fast <em>and</em> <strong>red</strong></p>`, expected: `<p>Fast <em>and</em> <strong>red</strong></p>`},
		{name: "drops scripts", input: `<p>ok</p><script>alert(1)</script>`, expected: `<p>ok</p>`},
		{name: "drops javascript links", input: `<a href="javascript:alert(1)">x</a>`, expected: `x`},
		{name: "nofollow on links", input: `<a href="https://example.com">x</a>`, expected: `<a href="https://example.com" rel="nofollow">x</a>`},
		{name: "drops images", input: `<img src="x.png" onerror="alert(1)">`, expected: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	out, err := sanitizer.Markdown("Your **test drive** is confirmed.\n\n- Bring a license\n- Arrive early")
	require.NoError(t, err)
	require.Contains(t, out, "<strong>test drive</strong>")
	require.Contains(t, out, "<li>Bring a license</li>")

	out, err = sanitizer.Markdown("hi <script>alert(1)</script>")
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}
