package search

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"contentdl/internal/utils"
)

// PageSize is the number of results per search page; limits below it yield no
// requests at all, and limits round down to a multiple of it.
const PageSize = 10

// SearchParams are the derived request parameters for one search. Start is
// the only field the pager mutates between pages.
type SearchParams struct {
	Query string
	Start int
}

// Pager walks search result pages at increasing start offsets until limit
// links have been collected, fewer if the results run out.
type Pager struct {
	client    utils.HTTPDoer
	searchURL string
}

func NewPager(client utils.HTTPDoer, searchURL string) *Pager {
	return &Pager{client: client, searchURL: searchURL}
}

// Collect issues one request per page step and concatenates the scraped
// links, truncated to limit entries.
func (p *Pager) Collect(ctx context.Context, limit int, params SearchParams) ([]string, error) {
	var links []string
	for start := 0; start < limit; start += PageSize {
		params.Start = start
		pageLinks, err := p.fetchPage(ctx, params)
		if err != nil {
			return nil, err
		}
		links = append(links, pageLinks...)
	}
	if len(links) > limit {
		links = links[:limit]
	}
	return links, nil
}

func (p *Pager) fetchPage(ctx context.Context, params SearchParams) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %v", err)
	}
	q := req.URL.Query()
	q.Set("q", params.Query)
	q.Set("start", strconv.Itoa(params.Start))
	req.URL.RawQuery = q.Encode()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching results page at start=%d: %w", params.Start, err)
	}
	defer resp.Body.Close()
	return ScrapeLinks(resp.Body)
}
