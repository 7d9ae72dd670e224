// Package sanitize strips dangerous markup from submitted rich-text
// fields before they are persisted. Content bodies arrive as HTML from
// the admin editor and are served back to browsers verbatim.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// richText allows the formatting tags the editor produces.
	richText = bluemonday.UGCPolicy()

	// plain strips all markup; used for titles and announcements.
	plain = bluemonday.StrictPolicy()
)

// HTML sanitizes a rich-text HTML fragment.
func HTML(s string) string {
	return richText.Sanitize(s)
}

// Text strips all tags from a single-line field.
func Text(s string) string {
	return plain.Sanitize(s)
}
