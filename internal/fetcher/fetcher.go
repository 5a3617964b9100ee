// Package fetcher downloads spreadsheet exports over HTTP or FTP and parses
// CSV and XLSX bodies into header and record slices.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads a remote resource.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// closes it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
