// Package source loads the company spreadsheet from a Google Sheets link,
// an HTTP or FTP URL, or a local file.
package source

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/presence-audit/internal/fetcher"
	"github.com/sells-group/presence-audit/internal/model"
)

// Format is the encoding of a source body.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("source: unknown format %q (want auto, csv or xlsx)", s)
	}
}

// Spec describes one spreadsheet to load. Exactly one of URL or File is set.
type Spec struct {
	URL    string
	File   string
	Format Format
	Sheet  string
}

// Location is the URL or path the spec reads from.
func (s Spec) Location() string {
	if s.File != "" {
		return s.File
	}
	return s.URL
}

// zipMagic opens every XLSX workbook.
var zipMagic = []byte("PK\x03\x04")

// Loader fetches and parses sources into raw rows.
type Loader struct {
	http      fetcher.Fetcher
	ftp       fetcher.Fetcher
	cacheBust bool
	now       func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithCacheBust toggles the t=<millis> parameter on Google export URLs.
func WithCacheBust(on bool) Option {
	return func(l *Loader) { l.cacheBust = on }
}

// WithClock overrides the time source used for cache busting.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// NewLoader creates a Loader. ftpFetcher may be nil when no ftp:// source is used.
func NewLoader(httpFetcher, ftpFetcher fetcher.Fetcher, opts ...Option) *Loader {
	l := &Loader{
		http:      httpFetcher,
		ftp:       ftpFetcher,
		cacheBust: true,
		now:       time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads one source. Every failure is returned as an *UnavailableError.
// A source with no header line yields no rows and no error.
func (l *Loader) Load(ctx context.Context, spec Spec) ([]model.RawRow, error) {
	loc := spec.Location()
	if loc == "" {
		return nil, unavailable("(none)", eris.New("no url or file configured"))
	}

	data, hint, err := l.read(ctx, spec)
	if err != nil {
		return nil, unavailable(loc, err)
	}

	table, err := parse(ctx, data, spec, hint)
	if err != nil {
		return nil, unavailable(loc, err)
	}

	rows := make([]model.RawRow, 0, len(table.Records))
	for _, rec := range table.Records {
		rows = append(rows, model.RowFromRecord(table.Header, rec))
	}

	zap.L().Info("source: loaded",
		zap.String("source", loc),
		zap.Int("columns", len(table.Header)),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

// LoadAll reads every source concurrently and concatenates the rows in
// argument order. The first failure cancels the others.
func (l *Loader) LoadAll(ctx context.Context, specs []Spec) ([]model.RawRow, error) {
	if len(specs) == 0 {
		return nil, unavailable("(none)", eris.New("no source configured"))
	}

	results := make([][]model.RawRow, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			rows, err := l.Load(gctx, spec)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.RawRow
	for _, rows := range results {
		all = append(all, rows...)
	}
	return all, nil
}

// read returns the body and a name hint (path or URL path) for format sniffing.
func (l *Loader) read(ctx context.Context, spec Spec) ([]byte, string, error) {
	if spec.File != "" {
		data, err := os.ReadFile(spec.File)
		if err != nil {
			return nil, "", eris.Wrap(err, "source: read file")
		}
		return data, spec.File, nil
	}

	target, err := l.resolveURL(spec.URL)
	if err != nil {
		return nil, "", err
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, "", eris.Wrap(err, "source: parse url")
	}

	var f fetcher.Fetcher
	switch u.Scheme {
	case "http", "https":
		f = l.http
	case "ftp":
		f = l.ftp
	}
	if f == nil {
		return nil, "", eris.Errorf("source: no fetcher for scheme %q", u.Scheme)
	}

	zap.L().Debug("source: fetching", zap.String("url", target))
	body, err := f.Download(ctx, target)
	if err != nil {
		return nil, "", eris.Wrap(err, "source: fetch")
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", eris.Wrap(err, "source: read body")
	}
	return data, u.Path, nil
}

// resolveURL rewrites Google Sheets sharing links to their CSV export.
func (l *Loader) resolveURL(raw string) (string, error) {
	if !isGoogleSheet(raw) {
		return raw, nil
	}
	target := raw
	if !isExportURL(raw) {
		target = ParseGoogleSheetsURL(raw)
		if target == "" {
			return "", eris.Errorf("source: malformed sharing url %q", raw)
		}
	}
	if l.cacheBust {
		target = withCacheBust(target, l.now())
	}
	return target, nil
}

func parse(ctx context.Context, data []byte, spec Spec, hint string) (fetcher.Table, error) {
	format := spec.Format
	if format == "" || format == FormatAuto {
		format = FormatCSV
		if bytes.HasPrefix(data, zipMagic) || strings.EqualFold(filepath.Ext(hint), ".xlsx") {
			format = FormatXLSX
		}
	}

	if format == FormatXLSX {
		return fetcher.ReadXLSXBytes(data, fetcher.XLSXOptions{SheetName: spec.Sheet})
	}
	return fetcher.ReadCSV(ctx, bytes.NewReader(data), fetcher.CSVOptions{LazyQuotes: true})
}
