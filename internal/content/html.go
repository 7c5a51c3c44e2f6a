package content

import "github.com/microcosm-cc/bluemonday"

// SanitizeHTML applies sanitization rules to HTML input, stripping unsupported
// tags and attributes. Summary bodies are user-authored, so everything beyond
// basic text markup is removed before rendering.
func SanitizeHTML() TransformerFunc {
	htmlSanitizer := sanitizer()
	return func(input []byte) ([]byte, error) {
		return htmlSanitizer.SanitizeBytes(input), nil
	}
}

// sanitizer is a modification of [bluemonday.UGCPolicy].
// Differences:
//
//   - Target _blank and noreferrer for links
//   - No figure/image elements (to avoid hot-linking)
//   - No tables, maps, or form-adjacent elements
func sanitizer() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()

	policy.AllowStandardAttributes()
	policy.AllowStandardURLs()
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	policy.AllowElements(
		"b",
		"blockquote",
		"br",
		"cite",
		"code",
		"del",
		"em",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"hr",
		"i",
		"ins",
		"mark",
		"p",
		"pre",
		"q",
		"s",
		"small",
		"strike",
		"strong",
		"sub",
		"sup",
		"u",
	)

	policy.AllowAttrs("href").OnElements("a")
	policy.AllowLists()

	return policy
}
