// Package normalize canonicalizes user-entered identity fields before they
// are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person's name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Stream canonicalizes a stream code: trimmed and uppercased, so "cs" and
// " CS " compare equal in targeting filters.
func Stream(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Streams canonicalizes a slice of stream codes, dropping entries that are
// empty after trimming and collapsing duplicates while preserving order.
func Streams(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = Stream(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
