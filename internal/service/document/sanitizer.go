package document

import (
	"github.com/microcosm-cc/bluemonday"
)

// htmlSanitizer strips scripts, event handlers and javascript: URLs from
// imported HTML while keeping formatting, headings, lists, links and tables.
//
// Thread-safe for concurrent use.
type htmlSanitizer struct {
	policy *bluemonday.Policy
}

func newHTMLSanitizer() *htmlSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &htmlSanitizer{policy: policy}
}

func (s *htmlSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
