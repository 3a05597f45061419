package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLStripsScripts(t *testing.T) {
	out := HTML(`<p>hello</p><script>alert("xss")</script>`)
	assert.Equal(t, "<p>hello</p>", out)
}

func TestHTMLKeepsFormatting(t *testing.T) {
	in := `<p>Use <strong>context.Context</strong> for cancellation:</p><pre><code>ctx := context.Background()</code></pre>`
	assert.Equal(t, in, HTML(in))
}

func TestHTMLStripsEventHandlers(t *testing.T) {
	out := HTML(`<img src="x.png" onerror="alert(1)"><a href="javascript:alert(1)">link</a>`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "javascript:")
}

func TestHTMLKeepsImages(t *testing.T) {
	out := HTML(`<img src="https://example.com/diagram.png">`)
	assert.Contains(t, out, `src="https://example.com/diagram.png"`)
}

func TestHTMLHardensLinks(t *testing.T) {
	out := HTML(`<a href="https://example.com">example</a>`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
}

func TestHTMLPlainTextPassesThrough(t *testing.T) {
	assert.Equal(t, "just plain text", HTML("just plain text"))
}
