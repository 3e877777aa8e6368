package interfaces

// ParseOptions tunes a single markdown conversion.
type ParseOptions struct {
	// Extensions selects named goldmark extensions. Empty means the GFM
	// default set (tables, strikethrough, autolinks).
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// MarkdownParser converts markdown source into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}
