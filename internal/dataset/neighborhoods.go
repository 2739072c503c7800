package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/rentsignal/internal/geo"
	"github.com/sells-group/rentsignal/internal/model"
)

// boundaryExts are the boundary file types readNeighborhoods understands.
var boundaryExts = []string{".geojson", ".json", ".shp"}

// readNeighborhoods reads neighborhood polygons from a GeoJSON file or a
// shapefile, chosen by extension.
func readNeighborhoods(path string, opts Options) ([]model.NeighborhoodPolygon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return geo.ReadShapefile(path, opts.NeighborhoodField)
	case ".geojson", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return geo.ReadGeoJSON(f, opts.NeighborhoodProperty)
	default:
		return nil, eris.Errorf("dataset: unsupported boundary format %q", filepath.Ext(path))
	}
}
