// Package fetcher downloads dataset files over HTTP and FTP and parses CSV,
// XLSX and ZIP inputs.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads a remote dataset.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}
