package wikicollect

import (
	"context"
	"strings"
)

// Page is the content of one encyclopedia page.
type Page struct {
	Name  string // page name as listed in search results
	Title string // normalized title, see NormalizeTitle
	Body  string
}

// ContentFormat selects how page bodies are rendered.
type ContentFormat string

// ContentFormat constants.
const (
	FormatText     ContentFormat = "text"
	FormatMarkdown ContentFormat = "markdown"
)

// ContentFetcher retrieves page content from the remote encyclopedia.
type ContentFetcher interface {
	// FetchPage retrieves the title and body of the named page.
	// Returns EREMOTE if the remote call fails or the page does not exist.
	FetchPage(ctx context.Context, pageName string) (*Page, error)
}

// NormalizeTitle turns a page name into a record title: underscores become
// spaces and the result is lowercased.
func NormalizeTitle(pageName string) string {
	return strings.ToLower(strings.ReplaceAll(pageName, "_", " "))
}
