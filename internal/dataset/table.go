package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rentsignal/internal/fetcher"
)

// tableExts are the file types readTable understands.
var tableExts = []string{".csv", ".tsv", ".txt", ".xlsx"}

// readTable reads a delimited file or the first sheet of a workbook.
func readTable(ctx context.Context, path string, opts Options) (*fetcher.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return fetcher.ReadXLSXTable(path, fetcher.XLSXOptions{})
	case ".csv", ".txt", ".tsv", "":
	default:
		return nil, eris.Errorf("dataset: unsupported table format %q", filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	delim := opts.Delimiter
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}
	return fetcher.ReadCSVTable(ctx, f, fetcher.CSVOptions{
		Delimiter:  delim,
		LazyQuotes: true,
		Encoding:   opts.Encoding,
	})
}

// timePointColumns returns the column index of each time point, or -1 for a
// column the table lacks.
func timePointColumns(t *fetcher.Table, opts Options) ([]int, []string) {
	cols := make([]int, len(opts.TimePoints))
	var missing []string
	for i, tp := range opts.TimePoints {
		cols[i] = t.Column(tp.Column)
		if cols[i] < 0 {
			missing = append(missing, tp.Column)
		}
	}
	return cols, missing
}
