// Package targetpolicy decides which organizations and postings a viewer may
// see, based on stream targeting.
//
// Visibility rules:
//   - Admins (empty stream) see everything; no stream filter is applied
//   - Students see an item only when its targeted streams contain their stream
//   - The posting feed is the exception: it filters on an explicit
//     candidate-stream list taken as supplied, defaulting to the viewer's own
//     stream only when no candidates are named
//   - An organization shown to a student also has its session list filtered
//     to the viewer's frame of reference by the caller
package targetpolicy

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/domain/models"
)

// Viewer is the minimal identity needed for a targeting decision.
type Viewer struct {
	Stream string
	Admin  bool
}

// ViewerFromSession derives a Viewer from the signed-in session user. A user
// with no stream is treated as an admin regardless of role label, which is
// also how admin accounts are stored.
func ViewerFromSession(u *auth.SessionUser) Viewer {
	if u == nil {
		return Viewer{}
	}
	return Viewer{Stream: u.Stream, Admin: u.Stream == ""}
}

// VisibleToViewer reports whether an item targeted at the given streams is
// visible to the viewer.
func VisibleToViewer(v Viewer, targetedStreams []string) bool {
	if v.Admin {
		return true
	}
	for _, s := range targetedStreams {
		if s == v.Stream {
			return true
		}
	}
	return false
}

// FilterOrganizations returns the organizations visible to the viewer,
// preserving order. Admins get the input unchanged.
func FilterOrganizations(v Viewer, orgs []models.Organization) []models.Organization {
	if v.Admin {
		return orgs
	}
	var out []models.Organization
	for _, org := range orgs {
		if VisibleToViewer(v, org.TargetedStreams) {
			out = append(out, org)
		}
	}
	return out
}

// FilterPostings returns the postings visible to the viewer, preserving
// order. Admins get the input unchanged.
func FilterPostings(v Viewer, postings []models.Posting) []models.Posting {
	if v.Admin {
		return postings
	}
	var out []models.Posting
	for _, p := range postings {
		if VisibleToViewer(v, p.TargetedStreams) {
			out = append(out, p)
		}
	}
	return out
}

// FeedStreams returns the stream set to restrict a feed query to, or nil for
// an unrestricted (admin) query. The candidate list is taken as supplied: it
// is the union of streams the caller wants to browse, not a projection of
// the viewer's own stream attribute. A stream-scoped viewer naming no
// candidates defaults to their own stream.
func FeedStreams(v Viewer, candidateStreams []string) []string {
	if len(candidateStreams) > 0 {
		return candidateStreams
	}
	if v.Admin {
		return nil
	}
	return []string{v.Stream}
}
