// Package sanitize cleans user-submitted rich-text HTML before it is stored.
// Question descriptions, answer contents and post bodies all pass through the
// same UGC policy.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy *bluemonday.Policy

func init() {
	policy = bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// HTML strips unsafe markup from user-generated rich-text content
func HTML(input string) string {
	return policy.Sanitize(input)
}
