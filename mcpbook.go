// Package mcpbook turns a public documentation site into a locally
// indexed, incrementally refreshed, full-text-searchable corpus. It
// discovers every reachable page, fetches under bounded concurrency with
// retry and backoff, extracts structured content (plain text, markdown,
// code blocks) from HTML, detects which previously indexed pages changed,
// and persists the result in a store with fast full-text search.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, htmltomarkdown/).
package mcpbook
