// Package search implements the console's free-text list filter: a
// case-insensitive substring test over a record's searchable fields joined
// by single spaces.
package search

import "strings"

// Matches reports whether query occurs, ignoring case, in the space-joined
// fields. Surrounding spaces in query are part of the term. A blank query
// matches everything.
func Matches(query string, fields ...string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}

	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), strings.ToLower(query))
}

// Filter returns the items matching query, in input order.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(query, fields(item)...) {
			out = append(out, item)
		}
	}

	return out
}
