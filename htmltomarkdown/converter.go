// Package htmltomarkdown renders article HTML extracts as Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wikicollect"
)

// Ensure Converter implements wikicollect.Converter at compile time.
var _ wikicollect.Converter = (*Converter)(nil)

// blankRun matches three or more consecutive line breaks, optionally
// separated by whitespace. Removed sections leave these behind.
var blankRun = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)

// Converter renders article extracts. Headings use ATX style so section
// levels survive as "##" prefixes, and infobox or data tables become pipe
// tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms an HTML extract into Markdown. Stub pages whose
// extract holds no markup produce an empty body. Runs of blank lines are
// collapsed to one and surrounding whitespace is trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", wikicollect.Errorf(wikicollect.EINVALID, "convert HTML: %v", err)
	}

	md = blankRun.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}
