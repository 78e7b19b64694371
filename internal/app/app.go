package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/phoneharvest/internal/batch"
	"github.com/hyperifyio/phoneharvest/internal/fetch"
	"github.com/hyperifyio/phoneharvest/internal/table"
)

// App wires the table loader, fetcher, and batch runner together.
type App struct {
	cfg     Config
	fetcher batch.Fetcher
}

func New(cfg Config) *App {
	return &App{
		cfg: cfg,
		fetcher: &fetch.Client{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.FetchTimeout,
		},
	}
}

// Run loads the input table, processes every row, appends the Phone_Numbers
// and Extraction_Status columns, and writes the output file. Row failures are
// recorded in the table; only an unreadable or unsupported input file, a
// missing URL column, or an unwritable output is fatal.
func (a *App) Run(ctx context.Context) error {
	t, err := table.Load(a.cfg.InputPath)
	if err != nil {
		return err
	}
	log.Info().Str("input", a.cfg.InputPath).Int("rows", len(t.Rows)).Msg("loaded input table")

	col, err := resolveURLColumn(t, a.cfg.URLColumn)
	if err != nil {
		return err
	}
	log.Debug().Str("column", t.Header[col]).Msg("using URL column")

	runner := &batch.Runner{
		Fetcher: a.fetcher,
		Progress: func(done, total int) {
			log.Debug().Int("done", done).Int("total", total).Msg("progress")
		},
	}
	results := runner.Run(ctx, t.Column(col))

	phones := make([]string, len(results))
	statuses := make([]string, len(results))
	for i, r := range results {
		phones[i] = r.Phones
		statuses[i] = r.Status
	}
	if err := t.AppendColumn("Phone_Numbers", phones); err != nil {
		return err
	}
	if err := t.AppendColumn("Extraction_Status", statuses); err != nil {
		return err
	}

	out := a.cfg.OutputPath
	if out == "" {
		out = filepath.Join(filepath.Dir(a.cfg.InputPath), "phone_numbers_extracted."+t.Format.Ext())
	}
	if err := t.Save(out); err != nil {
		return err
	}

	logSummary(out, results)
	return nil
}

// resolveURLColumn finds the configured column, or auto-detects one whose
// header contains "url", falling back to the first column.
func resolveURLColumn(t *table.Table, name string) (int, error) {
	if name != "" {
		if i, ok := t.ColumnIndex(name); ok {
			return i, nil
		}
		return 0, fmt.Errorf("column %q not found in input (have: %s)", name, strings.Join(t.Header, ", "))
	}
	for i, h := range t.Header {
		if strings.Contains(strings.ToLower(h), "url") {
			return i, nil
		}
	}
	if len(t.Header) == 0 {
		return 0, fmt.Errorf("input has no columns")
	}
	return 0, nil
}

func logSummary(out string, results []batch.RowResult) {
	var found, skipped, empty, failed int
	for _, r := range results {
		switch {
		case r.Status == batch.StatusSkipped:
			skipped++
		case r.Status == batch.StatusNoNumbers:
			empty++
		case r.Status == batch.StatusError:
			failed++
		default:
			found++
		}
	}
	log.Info().
		Int("rows", len(results)).
		Int("found", found).
		Int("noNumbers", empty).
		Int("skipped", skipped).
		Int("errors", failed).
		Str("out", out).
		Msg("wrote output")

	// Surface the first few failures the way the original UI listed them.
	shown := 0
	for _, r := range results {
		if r.Status != batch.StatusError {
			continue
		}
		log.Warn().Str("url", r.URL).Str("detail", r.Phones).Msg("row failed")
		if shown++; shown == 3 {
			break
		}
	}
}
