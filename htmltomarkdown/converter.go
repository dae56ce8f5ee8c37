// Package htmltomarkdown renders fetched listing pages as markdown so the
// markdown heuristics can run over pages whose markup the selector and
// hydration strategies do not recognise.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobkorea"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements jobkorea.Converter at compile time.
var _ jobkorea.Converter = (*Converter)(nil)

// Converter converts listing HTML to line-oriented markdown.
//
// By default lists are flattened and every link or span outside a table is
// given a block of its own, so each title and company link renders as a whole
// markdown line the way remote scraping services emit them. Inline links
// inside list items would otherwise share one bulleted line.
type Converter struct {
	conv           *converter.Converter
	preserveLayout bool
}

// Option configures a Converter.
type Option func(*Converter)

// PreserveLayout converts the HTML as is, keeping lists and inline links.
func PreserveLayout() Option {
	return func(c *Converter) {
		c.preserveLayout = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown. Scripts and styles are
// dropped; links keep their original targets.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", jobkorea.Errorf(jobkorea.EINVALID, "empty HTML input")
	}

	if !c.preserveLayout {
		flat, err := flatten(html)
		if err != nil {
			return "", err
		}
		html = flat
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return result, nil
}

// flatten turns lists into plain blocks and wraps every link and every
// span outside a table in a paragraph, so the labels of an info block
// (location, experience, date) land on lines of their own.
func flatten(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", jobkorea.Errorf(jobkorea.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("ul, ol, li").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			n.Data = "div"
			n.DataAtom = atom.Div
		}
	})
	doc.Find("a[href]").Not("table a").WrapHtml("<p></p>")
	doc.Find("span").Not("table span, a span").WrapHtml("<p></p>")

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render flattened HTML: %w", err)
	}
	return out, nil
}
