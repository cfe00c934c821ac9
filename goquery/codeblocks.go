package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/tcsenpai/mcpbook"
)

// LanguageSet is the allow-list used to validate language names found in
// code-block markup. It is a policy table: callers can supply their own
// set and aliases to tune detection per site.
type LanguageSet struct {
	known   map[string]bool
	aliases map[string]string
}

// DefaultLanguages returns the stock allow-list covering the languages
// documentation sites commonly annotate.
func DefaultLanguages() *LanguageSet {
	known := []string{
		"bash", "c", "cpp", "csharp", "css", "diff", "dockerfile", "go",
		"graphql", "html", "http", "ini", "java", "javascript", "json",
		"kotlin", "lua", "makefile", "markdown", "php", "python", "r",
		"ruby", "rust", "scala", "sql", "swift", "text", "toml",
		"typescript", "xml", "yaml",
	}
	ls := &LanguageSet{
		known: make(map[string]bool, len(known)),
		aliases: map[string]string{
			"sh": "bash", "shell": "bash", "zsh": "bash", "console": "bash",
			"terminal": "bash", "golang": "go", "js": "javascript",
			"jsx": "javascript", "node": "javascript", "ts": "typescript",
			"tsx": "typescript", "py": "python", "python3": "python",
			"rb": "ruby", "c++": "cpp", "cs": "csharp", "c#": "csharp",
			"yml": "yaml", "md": "markdown", "plaintext": "text",
			"plain": "text", "docker": "dockerfile",
		},
	}
	for _, l := range known {
		ls.known[l] = true
	}
	return ls
}

// Normalize resolves aliases and validates a marked-up language name.
// Returns "" when the name is not in the allow-list.
func (ls *LanguageSet) Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := ls.aliases[name]; ok {
		name = alias
	}
	if ls.known[name] {
		return name
	}
	return ""
}

// extractCodeBlocks scans a content selection for code-block markup and
// returns the blocks in document order, deduplicated by (language, code).
func extractCodeBlocks(sel *goquery.Selection, languages *LanguageSet) []mcpbook.CodeBlock {
	var blocks []mcpbook.CodeBlock
	seen := make(map[uint64]bool)

	sel.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		codeSel := pre.Find("code").First()
		if codeSel.Length() == 0 {
			codeSel = pre
		}

		code := strings.Trim(codeSel.Text(), "\n")
		if strings.TrimSpace(code) == "" {
			return
		}

		lang := languages.Normalize(markedUpLanguage(pre, codeSel))
		if lang == "" {
			lang = sniffLanguage(code)
		}

		key := xxhash.Sum64String(lang + "\x00" + code)
		if seen[key] {
			return
		}
		seen[key] = true

		blocks = append(blocks, mcpbook.CodeBlock{
			Language:       lang,
			Code:           code,
			Title:          blockTitle(pre),
			HasLineNumbers: hasLineNumbers(pre),
		})
	})

	return blocks
}

// markedUpLanguage reads an explicit language annotation from the
// pre/code pair or an enclosing figure/div: language-* and lang-*
// class prefixes and data-language/data-lang attributes.
func markedUpLanguage(pre, code *goquery.Selection) string {
	candidates := []*goquery.Selection{code, pre, pre.Parent()}

	for _, sel := range candidates {
		if sel.Length() == 0 {
			continue
		}
		if v, ok := sel.Attr("data-language"); ok && v != "" {
			return v
		}
		if v, ok := sel.Attr("data-lang"); ok && v != "" {
			return v
		}
		if class, ok := sel.Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				for _, prefix := range []string{"language-", "lang-", "highlight-"} {
					if strings.HasPrefix(c, prefix) {
						return strings.TrimPrefix(c, prefix)
					}
				}
			}
		}
	}
	return ""
}

// sniffLanguage guesses a language from code content using light keyword
// heuristics. Always returns a valid language, falling back to "text".
func sniffLanguage(code string) string {
	trimmed := strings.TrimSpace(code)

	switch {
	case strings.HasPrefix(trimmed, "<?php"):
		return "php"
	case strings.HasPrefix(trimmed, "#!/bin/sh"), strings.HasPrefix(trimmed, "#!/bin/bash"),
		strings.HasPrefix(trimmed, "$ "), strings.HasPrefix(trimmed, "curl "),
		strings.HasPrefix(trimmed, "npm "), strings.HasPrefix(trimmed, "git "):
		return "bash"
	case strings.Contains(code, "package ") && strings.Contains(code, "func "):
		return "go"
	case strings.Contains(code, "def ") && strings.Contains(code, ":"),
		strings.Contains(code, "import ") && strings.Contains(code, "print("):
		return "python"
	case strings.Contains(code, "interface ") && strings.Contains(code, ": string"),
		strings.Contains(code, ": number"):
		return "typescript"
	case strings.Contains(code, "function ") && strings.Contains(code, "{"),
		strings.Contains(code, "=> {"), strings.Contains(code, "const ") && strings.Contains(code, "require("):
		return "javascript"
	case strings.Contains(code, "SELECT ") && strings.Contains(code, " FROM "):
		return "sql"
	case looksLikeJSON(trimmed):
		return "json"
	case strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">"):
		return "html"
	default:
		return "text"
	}
}

// looksLikeJSON is a cheap structural check, not a parse.
func looksLikeJSON(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}' || first == '[' && last == ']') &&
		strings.Contains(s, "\"")
}

// blockTitle reads a code block title from markup: a data-title
// attribute, a preceding figcaption, or a filename hint.
func blockTitle(pre *goquery.Selection) string {
	if v, ok := pre.Attr("data-title"); ok {
		return strings.TrimSpace(v)
	}
	if v, ok := pre.Attr("data-filename"); ok {
		return strings.TrimSpace(v)
	}
	parent := pre.Parent()
	if parent.Is("figure") {
		return strings.TrimSpace(parent.Find("figcaption").First().Text())
	}
	return ""
}

// hasLineNumbers detects line-number markup on the block or its parent.
func hasLineNumbers(pre *goquery.Selection) bool {
	for _, sel := range []*goquery.Selection{pre, pre.Parent()} {
		if class, ok := sel.Attr("class"); ok {
			lower := strings.ToLower(class)
			if strings.Contains(lower, "line-numbers") || strings.Contains(lower, "linenos") {
				return true
			}
		}
	}
	return pre.Find(".line-number, .lineno").Length() > 0
}
