package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook/goquery"
)

func TestExtractor_Extract_code_blocks_with_marked_up_language(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
<pre><code class="language-go">package main

func main() {}</code></pre>
<div data-language="python"><pre><code>print("hi")</code></pre></div>
<pre class="line-numbers"><code class="lang-json">{"a": 1}</code></pre>
</main></body></html>`

	e := goquery.NewExtractor()
	result, err := e.Extract(html)

	require.NoError(t, err)
	require.Len(t, result.CodeBlocks, 3)

	assert.Equal(t, "go", result.CodeBlocks[0].Language)
	assert.Contains(t, result.CodeBlocks[0].Code, "func main()")

	assert.Equal(t, "python", result.CodeBlocks[1].Language)

	assert.Equal(t, "json", result.CodeBlocks[2].Language)
	assert.True(t, result.CodeBlocks[2].HasLineNumbers)
}

func TestExtractor_Extract_sniffs_language_when_markup_is_absent(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
<pre><code>$ npm install example</code></pre>
<pre><code>SELECT id FROM users WHERE active = 1</code></pre>
<pre><code>just some prose output</code></pre>
</main></body></html>`

	e := goquery.NewExtractor()
	result, err := e.Extract(html)

	require.NoError(t, err)
	require.Len(t, result.CodeBlocks, 3)
	assert.Equal(t, "bash", result.CodeBlocks[0].Language)
	assert.Equal(t, "sql", result.CodeBlocks[1].Language)
	assert.Equal(t, "text", result.CodeBlocks[2].Language)
}

func TestExtractor_Extract_rejects_unknown_language_markup(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
<pre><code class="language-madeuplang">some tokens here</code></pre>
</main></body></html>`

	e := goquery.NewExtractor()
	result, err := e.Extract(html)

	require.NoError(t, err)
	require.Len(t, result.CodeBlocks, 1)
	assert.Equal(t, "text", result.CodeBlocks[0].Language,
		"unknown markup language must fall through to sniffing")
}

func TestExtractor_Extract_dedupes_identical_blocks(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
<pre><code class="language-bash">npm install example</code></pre>
<pre><code class="language-bash">npm install example</code></pre>
</main></body></html>`

	e := goquery.NewExtractor()
	result, err := e.Extract(html)

	require.NoError(t, err)
	assert.Len(t, result.CodeBlocks, 1)
}

func TestLanguageSet_Normalize_aliases(t *testing.T) {
	t.Parallel()

	ls := goquery.DefaultLanguages()

	assert.Equal(t, "javascript", ls.Normalize("js"))
	assert.Equal(t, "bash", ls.Normalize("Shell"))
	assert.Equal(t, "go", ls.Normalize("golang"))
	assert.Equal(t, "", ls.Normalize("madeuplang"))
}
