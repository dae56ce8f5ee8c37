// Package jobkorea extracts job listings from the JobKorea job board.
// It acquires listing pages either directly over HTTP or through a remote
// browser service, and normalizes static HTML, embedded hydration JSON and
// markdown renderings of the same page into one Job record shape.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, mcp/).
package jobkorea

import "strings"

// DefaultBaseURL is the origin relative links are resolved against.
const DefaultBaseURL = "https://www.jobkorea.co.kr"

// DetailPathMarker identifies links that point at a posting detail page.
const DetailPathMarker = "Recruit/GI_Read"

// Placeholder values for fields that could not be extracted.
const (
	Unknown = "Unknown"
	SeeLink = "See Link"
)

// DetailURL returns the detail page URL for a posting ID.
func DetailURL(id string) string {
	return DefaultBaseURL + "/" + DetailPathMarker + "/" + strings.TrimSpace(id)
}
