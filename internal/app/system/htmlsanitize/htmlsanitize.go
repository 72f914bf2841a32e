// Package htmlsanitize strips unsafe markup from user-and-admin supplied
// HTML. Posting content passes through here on create and edit; everything
// else in the system stores plain strings.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows the usual formatting tags (p, strong, em, lists, links with
// safe hrefs) and drops scripts, event handlers, and javascript: URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeHTML sanitizes and returns the result as template.HTML for
// rendering contexts that need it marked safe.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}
