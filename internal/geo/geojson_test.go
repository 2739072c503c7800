package geo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"neighbourhood": " Lincoln Park "},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"Neighbourhood": "Loop"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[20,0],[22,0],[22,2],[20,2],[20,0]]]]}},
    {"type": "Feature", "properties": {"neighbourhood": "Pin"},
     "geometry": {"type": "Point", "coordinates": [1,1]}},
    {"type": "Feature", "properties": {"neighbourhood": ""},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "properties": {"neighbourhood": 77},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	polys, err := ReadGeoJSON(strings.NewReader(sampleGeoJSON), "neighbourhood")
	require.NoError(t, err)
	require.Len(t, polys, 3)

	assert.Equal(t, "Lincoln Park", polys[0].Name)
	assert.IsType(t, &geom.Polygon{}, polys[0].Geometry)
	assert.Equal(t, "Loop", polys[1].Name)
	assert.IsType(t, &geom.MultiPolygon{}, polys[1].Geometry)
	assert.Equal(t, "77", polys[2].Name)
}

func TestReadGeoJSON_Invalid(t *testing.T) {
	_, err := ReadGeoJSON(strings.NewReader("{not json"), "neighbourhood")
	assert.Error(t, err)
}

func TestReadGeoJSON_FeedsLocator(t *testing.T) {
	polys, err := ReadGeoJSON(strings.NewReader(sampleGeoJSON), "neighbourhood")
	require.NoError(t, err)

	loc := NewLocator(polys)
	name, ok := loc.Locate(1, 21)
	assert.True(t, ok)
	assert.Equal(t, "Loop", name)
}
