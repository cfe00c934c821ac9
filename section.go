package mcpbook

import "strings"

// canonicalSections maps well-known first path segments to display names.
// Anything else falls back to the title-cased segment.
var canonicalSections = map[string]string{
	"":                "General",
	"api":             "API Reference",
	"api-reference":   "API Reference",
	"cli":             "CLI",
	"sdk":             "SDK",
	"faq":             "FAQ",
	"docs":            "Documentation",
	"guide":           "Guides",
	"guides":          "Guides",
	"tutorial":        "Tutorials",
	"tutorials":       "Tutorials",
	"reference":       "Reference",
	"getting-started": "Getting Started",
	"changelog":       "Changelog",
}

// DeriveSection maps a site-relative path to its section and subsection.
// The first path segment selects the section via the canonicalization
// table; the second segment, if present, is the subsection.
func DeriveSection(relPath string) (section, subsection string) {
	trimmed := strings.Trim(relPath, "/")
	if trimmed == "" {
		return canonicalSections[""], ""
	}

	segments := strings.Split(trimmed, "/")

	first := strings.ToLower(segments[0])
	if name, ok := canonicalSections[first]; ok {
		section = name
	} else {
		section = titleCaseSegment(first)
	}

	if len(segments) > 1 {
		subsection = titleCaseSegment(strings.ToLower(segments[1]))
	}

	return section, subsection
}

// titleCaseSegment turns a URL segment like "getting-started" into
// "Getting Started".
func titleCaseSegment(seg string) string {
	seg = strings.TrimSuffix(seg, ".html")
	seg = strings.TrimSuffix(seg, ".htm")

	words := strings.FieldsFunc(seg, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
