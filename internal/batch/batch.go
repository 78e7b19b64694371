// Package batch runs the per-row fetch/extract loop over a list of URLs.
package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/phoneharvest/internal/extract"
	"github.com/hyperifyio/phoneharvest/internal/phone"
)

// Row statuses. StatusFound is a format string carrying the candidate count.
const (
	StatusSkipped   = "skipped"
	StatusNoNumbers = "no numbers"
	StatusError     = "error"
)

// Fetcher retrieves one page body per call. Implemented by fetch.Client;
// abstracted here so tests can run the loop without a network.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// RowResult is the outcome for a single input row. Phones holds either the
// " / "-joined candidates or the human-readable status text for the row.
type RowResult struct {
	URL    string
	Phones string
	Status string
}

// Runner processes rows strictly in order, one blocking fetch at a time.
type Runner struct {
	Fetcher Fetcher
	// Progress, when set, is called after each row with rows done and total.
	Progress func(done, total int)
}

// Run produces exactly one RowResult per input URL, preserving input order.
// No row's failure aborts the batch. Blank URLs are skipped without a network
// call. Once ctx is done, remaining rows are recorded as error rows so the
// one-result-per-row invariant holds under cancellation.
func (r *Runner) Run(ctx context.Context, urls []string) []RowResult {
	results := make([]RowResult, 0, len(urls))
	for i, raw := range urls {
		results = append(results, r.runRow(ctx, raw))
		if r.Progress != nil {
			r.Progress(i+1, len(urls))
		}
	}
	return results
}

func (r *Runner) runRow(ctx context.Context, raw string) RowResult {
	url := strings.TrimSpace(raw)
	if url == "" {
		return RowResult{URL: raw, Phones: "No URL provided", Status: StatusSkipped}
	}
	if err := ctx.Err(); err != nil {
		return RowResult{URL: url, Phones: "Error: " + err.Error(), Status: StatusError}
	}

	body, err := r.Fetcher.Get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return RowResult{URL: url, Phones: "Error: " + err.Error(), Status: StatusError}
	}

	numbers := phone.Extract(extract.Text(body))
	if len(numbers) == 0 {
		return RowResult{URL: url, Phones: "No numbers found", Status: StatusNoNumbers}
	}
	return RowResult{
		URL:    url,
		Phones: strings.Join(numbers, " / "),
		Status: fmt.Sprintf("Found %d numbers", len(numbers)),
	}
}
