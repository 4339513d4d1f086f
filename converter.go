package wikicollect

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from a Cleaner).
	Convert(html string) (string, error)
}

// Cleaner strips encyclopedia markup that carries no article text, such as
// citation markers and edit links, from an HTML fragment.
type Cleaner interface {
	Clean(html string) (string, error)
}
