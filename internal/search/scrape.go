package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Organic results are the h3.r blocks; their anchors wrap the destination in
// a redirect URL of the form /url?q=<dest>&<tracking>.
const (
	resultSelector    = "h3.r a"
	redirectPrefixLen = 7 // len("/url?q=")
)

// ScrapeLinks extracts candidate links from one search-results page, in
// document order. The redirect wrapper prefix is stripped and everything from
// the first '&' on is dropped. A page with no results yields an empty slice.
func ScrapeLinks(body io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("error parsing results page: %v", err)
	}
	var links []string
	doc.Find(resultSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || len(href) < redirectPrefixLen {
			return
		}
		link := href[redirectPrefixLen:]
		if i := strings.IndexByte(link, '&'); i >= 0 {
			link = link[:i]
		}
		links = append(links, link)
	})
	return links, nil
}
