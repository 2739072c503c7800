package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Resolver turns a dataset location into a readable local file. Locations
// may be local paths, http(s):// URLs or ftp:// URLs. Locations ending in
// .zip are extracted and the first file with a wanted extension is used.
type Resolver struct {
	HTTP    Fetcher
	FTP     Fetcher
	TempDir string
}

// NewResolver creates a Resolver that stages downloads under tempDir.
func NewResolver(httpFetcher, ftpFetcher Fetcher, tempDir string) *Resolver {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Resolver{HTTP: httpFetcher, FTP: ftpFetcher, TempDir: tempDir}
}

// IsRemote reports whether location is an http(s) or ftp URL.
func IsRemote(location string) bool {
	switch scheme(location) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

func scheme(location string) string {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// Resolve returns a local path for location. The caller owns the returned
// cleanup func, which removes anything staged for this call.
func (r *Resolver) Resolve(ctx context.Context, location string, exts ...string) (string, func(), error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", func() {}, eris.New("source: empty location")
	}

	workDir := ""
	cleanup := func() {
		if workDir != "" {
			_ = os.RemoveAll(workDir)
		}
	}
	stage := func() (string, error) {
		if workDir == "" {
			if err := os.MkdirAll(r.TempDir, 0o755); err != nil {
				return "", eris.Wrap(err, "source: create temp dir")
			}
			workDir = filepath.Join(r.TempDir, uuid.NewString())
			if err := os.MkdirAll(workDir, 0o755); err != nil {
				return "", eris.Wrap(err, "source: create work dir")
			}
		}
		return workDir, nil
	}

	local := location
	if IsRemote(location) {
		dir, err := stage()
		if err != nil {
			cleanup()
			return "", func() {}, err
		}
		local = filepath.Join(dir, remoteBase(location))
		if err := r.download(ctx, location, local); err != nil {
			cleanup()
			return "", func() {}, err
		}
	} else if _, err := os.Stat(local); err != nil {
		return "", func() {}, eris.Wrapf(err, "source: stat %s", local)
	}

	if strings.EqualFold(filepath.Ext(local), ".zip") && len(exts) > 0 {
		dir, err := stage()
		if err != nil {
			cleanup()
			return "", func() {}, err
		}
		extracted, err := ExtractZIPMatching(local, filepath.Join(dir, "unzipped"), exts...)
		if err != nil {
			cleanup()
			return "", func() {}, eris.Wrapf(err, "source: extract %s", location)
		}
		local = extracted
	}

	return local, cleanup, nil
}

func (r *Resolver) download(ctx context.Context, location, dest string) error {
	var f Fetcher
	switch scheme(location) {
	case "ftp":
		f = r.FTP
	default:
		f = r.HTTP
	}
	if f == nil {
		return eris.Errorf("source: no fetcher for %s", location)
	}

	n, err := f.DownloadToFile(ctx, location, dest)
	if err != nil {
		return eris.Wrapf(err, "source: download %s", location)
	}
	zap.L().Info("source: downloaded dataset",
		zap.String("location", location),
		zap.Int64("bytes", n),
	)
	return nil
}

// remoteBase returns the file name of a URL's path, or "download" when the
// path has none.
func remoteBase(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return "download"
	}
	base := path.Base(u.Path)
	if base == "" || base == "/" || base == "." {
		return "download"
	}
	return base
}
