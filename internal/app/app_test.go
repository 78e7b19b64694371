package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/phoneharvest/internal/table"
)

func TestRun_EndToEndCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Contact us: +1 (555) 123-4567 or 555.987.6543</p></body></html>"))
	}))
	defer srv.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	dir := t.TempDir()
	input := filepath.Join(dir, "sites.csv")
	csv := "name,website\n" +
		"Acme," + srv.URL + "\n" +
		"Blank,\n" +
		"Down," + deadURL + "\n"
	if err := os.WriteFile(input, []byte(csv), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	output := filepath.Join(dir, "out.csv")
	a := New(Config{
		InputPath:    input,
		OutputPath:   output,
		URLColumn:    "website",
		FetchTimeout: 2 * time.Second,
	})
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := table.Load(output)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("expected row count preserved, got %d", len(got.Rows))
	}
	if got.Header[len(got.Header)-2] != "Phone_Numbers" || got.Header[len(got.Header)-1] != "Extraction_Status" {
		t.Fatalf("expected appended columns last, got %v", got.Header)
	}

	phones, status := got.Cell(0, 2), got.Cell(0, 3)
	if status != "Found 2 numbers" {
		t.Fatalf("unexpected status for first row: %q", status)
	}
	parts := strings.Split(phones, " / ")
	set := map[string]struct{}{}
	for _, p := range parts {
		set[p] = struct{}{}
	}
	for _, want := range []string{"+1 (555) 123-4567", "555.987.6543"} {
		if _, ok := set[want]; !ok {
			t.Fatalf("expected candidate %q in %q", want, phones)
		}
	}

	if got.Cell(1, 2) != "No URL provided" || got.Cell(1, 3) != "skipped" {
		t.Fatalf("unexpected blank row result: %q / %q", got.Cell(1, 2), got.Cell(1, 3))
	}
	if got.Cell(2, 3) != "error" || !strings.HasPrefix(got.Cell(2, 2), "Error: ") {
		t.Fatalf("unexpected failed row result: %q / %q", got.Cell(2, 2), got.Cell(2, 3))
	}
}

func TestRun_UnsupportedInputIsFatal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sites.txt")
	if err := os.WriteFile(input, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	a := New(Config{InputPath: input})
	if err := a.Run(context.Background()); err == nil {
		t.Fatalf("expected fatal error for unsupported input format")
	}
}

func TestRun_MissingColumnIsFatal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sites.csv")
	if err := os.WriteFile(input, []byte("name\nAcme\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	a := New(Config{InputPath: input, URLColumn: "website"})
	if err := a.Run(context.Background()); err == nil {
		t.Fatalf("expected fatal error for missing URL column")
	}
}

func TestResolveURLColumn_AutoDetect(t *testing.T) {
	tbl := &table.Table{Header: []string{"Company", "Website URL", "Notes"}}
	i, err := resolveURLColumn(tbl, "")
	if err != nil || i != 1 {
		t.Fatalf("expected auto-detected column 1, got %d (%v)", i, err)
	}

	tbl = &table.Table{Header: []string{"a", "b"}}
	i, err = resolveURLColumn(tbl, "")
	if err != nil || i != 0 {
		t.Fatalf("expected fallback to first column, got %d (%v)", i, err)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{InputPath: "flag.csv"}
	var fc FileConfig
	fc.Input = "file.csv"
	fc.Column = "website"
	fc.Fetch.Timeout = 5 * time.Second
	ApplyFileConfig(&cfg, fc)

	if cfg.InputPath != "flag.csv" {
		t.Fatalf("flag value must win, got %q", cfg.InputPath)
	}
	if cfg.URLColumn != "website" || cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("file values must fill unset fields: %+v", cfg)
	}
}
