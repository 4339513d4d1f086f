// Package goquery cleans article HTML extracts with goquery before they are
// converted to Markdown.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikicollect"
)

// Ensure Cleaner implements wikicollect.Cleaner at compile time.
var _ wikicollect.Cleaner = (*Cleaner)(nil)

// DefaultRemoveSelectors match markup that carries no article text.
var DefaultRemoveSelectors = []string{
	"script",
	"style",
	"link",
	"sup.reference",
	".mw-editsection",
	".mw-empty-elt",
	".mw-ref",
	".noprint",
}

// Cleaner removes elements matching a list of CSS selectors.
type Cleaner struct {
	selectors []string
}

// NewCleaner creates a Cleaner. With no selectors it uses
// DefaultRemoveSelectors.
func NewCleaner(selectors ...string) *Cleaner {
	if len(selectors) == 0 {
		selectors = DefaultRemoveSelectors
	}
	return &Cleaner{selectors: selectors}
}

// Clean returns html with every matching element removed and paragraphs
// left without text dropped.
func (c *Cleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", wikicollect.Errorf(wikicollect.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, sel := range c.selectors {
		doc.Find(sel).Remove()
	}

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if strings.TrimSpace(p.Text()) == "" && p.Find("img").Length() == 0 {
			p.Remove()
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
