package jamhub

import "github.com/microcosm-cc/bluemonday"

// bioPolicy keeps the markup the rich text editor produces and drops
// everything that could execute.
var bioPolicy = bluemonday.UGCPolicy()

// SanitizeBio neutralizes unsafe markup in user supplied rich text. Applied
// by the editor before submit and again by the server on ingest.
func SanitizeBio(bio string) string {
	return bioPolicy.Sanitize(bio)
}
