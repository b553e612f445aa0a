package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |\n\nvisit https://example.com\nnext line")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `href="https://example.com"`)
	assert.Contains(t, html, "<br")
}

func TestRenderMarkdownStripsUnsafeLinks(t *testing.T) {
	html, err := RenderMarkdown("[x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, html, "javascript:")
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<b>ok</b>", SanitizeHTML(`<b onclick="x()">ok</b>`))
}
