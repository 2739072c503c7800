package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/rentsignal/internal/model"
)

const listingsCSV = `id,name,latitude,longitude,neighbourhood,zip_code,31-12-2023,31-03-2024,30-06-2024
1,Loft,41.92,-87.65,Lincoln Park,60614,150,160,170
2,Studio,41.93,-87.64,lincoln park ,60614,"$1,100.50",,abc
3,Flat,41.88,-87.63,Loop,60601.0,300,290,280
4,Room,not-a-number,-87.63,Loop,60601,100,100,100
5,Cabin,41.95,-87.66,,60640,80,90,100
`

const rentalsCSV = `RegionID,RegionName,City,31-12-2023,31-03-2024,30-06-2024
1,60614,Chicago,2000,2100,2200
2, 60601 ,Chicago,2500,2400,
3,,Chicago,1,1,1
`

const neighborhoodsGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighbourhood": "Uptown"},
     "geometry": {"type": "Polygon", "coordinates": [[[-87.70,41.94],[-87.60,41.94],[-87.60,41.98],[-87.70,41.98],[-87.70,41.94]]]}}
  ]
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testOptions(t *testing.T, dir string) Options {
	t.Helper()
	return Options{
		Listings:             writeFixture(t, dir, "listings.csv", listingsCSV),
		Rentals:              writeFixture(t, dir, "rentals.csv", rentalsCSV),
		Neighborhoods:        writeFixture(t, dir, "neighbourhoods.geojson", neighborhoodsGeoJSON),
		NeighborhoodProperty: "neighbourhood",
		NeighborhoodField:    "pri_neigh",
		Delimiter:            ',',
		TimePoints:           model.DefaultTimePoints(),
	}
}
