package suggest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PlainText strips markup from a volume description and collapses whitespace
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	// block boundaries would otherwise glue words together
	doc.Find("br, p, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AfterNodes(&html.Node{Type: html.TextNode, Data: " "})
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
