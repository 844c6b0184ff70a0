// Package search finds downloadable file links for a topic: it pages through
// search results, scrapes candidate links out of the markup, and probes each
// one for liveness before handing it to the download layer.
package search

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"contentdl/internal/utils"
)

const DefaultSearchURL = "https://www.google.com/search"

type Config struct {
	SearchURL    string
	ProbeTimeout time.Duration
	Client       utils.HTTPDoer
	Report       io.Writer // per-link probe lines, stdout if nil
}

// Engine composes the pager and validator into a single search operation.
// Every call performs fresh network I/O; nothing is cached between calls.
type Engine struct {
	pager     *Pager
	validator *Validator
}

func NewEngine(cfg Config) *Engine {
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	if cfg.Report == nil {
		cfg.Report = os.Stdout
	}
	return &Engine{
		pager:     NewPager(cfg.Client, cfg.SearchURL),
		validator: NewValidator(cfg.ProbeTimeout, cfg.Report),
	}
}

// Search returns live links for up to limit results of a filetype-scoped
// query. Probe failures are absorbed into the result set (excluded, never an
// error); page fetch failures propagate.
func (e *Engine) Search(ctx context.Context, query, fileType string, limit int) ([]string, error) {
	log := utils.GetLogger("search")
	params := SearchParams{Query: fmt.Sprintf("filetype:%s %s", fileType, query)}
	links, err := e.pager.Collect(ctx, limit, params)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(links)).Msg("Links scraped from result pages")
	accepted := e.validator.Validate(ctx, links)
	log.Debug().Int("count", len(accepted)).Msg("Links accepted after probing")
	return accepted, nil
}
