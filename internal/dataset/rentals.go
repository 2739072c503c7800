package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/fetcher"
	"github.com/sells-group/rentsignal/internal/model"
)

// ParseRentals converts a rental price table into records keyed by the
// RegionName zip code. Rows without a zip code are skipped.
func ParseRentals(t *fetcher.Table, opts Options) ([]model.RentalPriceRecord, error) {
	zipCol := t.Column("RegionName", "region_name", "zip_code")
	if zipCol < 0 {
		return nil, eris.New("dataset: rentals need a RegionName column")
	}

	priceCols, missing := timePointColumns(t, opts)
	if len(missing) > 0 {
		zap.L().Warn("dataset: rentals missing time point columns", zap.Strings("columns", missing))
	}

	out := make([]model.RentalPriceRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		zip := normalizeZip(fetcher.Field(row, zipCol))
		if zip == "" {
			continue
		}
		rec := model.RentalPriceRecord{RegionZipCode: zip}
		for tp, col := range priceCols {
			rec.Prices[tp] = model.ParsePrice(fetcher.Field(row, col))
		}
		out = append(out, rec)
	}
	return out, nil
}

// normalizeZip trims a zip code and drops the ".0" suffix spreadsheets add
// to numeric cells.
func normalizeZip(raw string) string {
	z := strings.TrimSpace(raw)
	if strings.HasSuffix(z, ".0") && len(z) > 2 {
		z = z[:len(z)-2]
	}
	return z
}
