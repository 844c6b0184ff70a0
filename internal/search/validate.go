package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"contentdl/internal/utils"
)

// ProbeResult pairs a candidate link with the status code its liveness probe
// produced. Code 0 is the unreachable sentinel: any failure that is not an
// HTTP response (DNS, timeout, refused connection, malformed URL) collapses
// to it.
type ProbeResult struct {
	URL        string
	StatusCode int
}

// Reachable implements the ProbeReachable acceptance policy: a link counts as
// available unless its probe totally failed. HTTP error statuses (404, 500)
// still pass, matching probe semantics rather than download success.
func (r ProbeResult) Reachable() bool {
	return r.StatusCode != 0
}

// Validator filters candidates to recognized URL schemes and probes each one
// for liveness. Probes use their own client, independent of the shared retry
// client used for search pages.
type Validator struct {
	probe  *http.Client
	report io.Writer
}

func NewValidator(timeout time.Duration, report io.Writer) *Validator {
	if timeout == 0 {
		timeout = utils.DefaultTimeout
	}
	return &Validator{
		probe:  &http.Client{Timeout: timeout},
		report: report,
	}
}

// FilterScheme keeps only candidates with an http:// or https:// prefix. The
// original behavior was a substring-membership check against the scheme
// literals; that accepted prefixes of the literals themselves, so it is
// replaced with a proper prefix test here.
func FilterScheme(candidates []string) []string {
	var kept []string
	for _, link := range candidates {
		if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
			kept = append(kept, link)
		}
	}
	return kept
}

// Validate scheme-filters the candidates, probes each survivor in order, and
// returns the accepted links in probe order. One report line per probed link
// goes to the configured writer.
func (v *Validator) Validate(ctx context.Context, candidates []string) []string {
	var accepted []string
	for _, link := range FilterScheme(candidates) {
		result := v.probeLink(ctx, link)
		fmt.Fprintf(v.report, "code: %d\turl: %s\n", result.StatusCode, result.URL)
		if result.Reachable() {
			accepted = append(accepted, result.URL)
		}
	}
	return accepted
}

func (v *Validator) probeLink(ctx context.Context, link string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ProbeResult{URL: link, StatusCode: 0}
	}
	resp, err := v.probe.Do(req)
	if err != nil {
		return ProbeResult{URL: link, StatusCode: 0}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return ProbeResult{URL: link, StatusCode: resp.StatusCode}
}
