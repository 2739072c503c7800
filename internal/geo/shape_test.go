package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func shpPolygon(parts ...[]shp.Point) *shp.Polygon {
	p := shp.Polygon(*shp.NewPolyLine(parts))
	return &p
}

// clockwise outer ring, as written by GIS tools.
var outerCW = []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}

// counter-clockwise hole.
var holeCCW = []shp.Point{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 4}}

var secondCW = []shp.Point{{X: 20, Y: 0}, {X: 20, Y: 2}, {X: 22, Y: 2}, {X: 22, Y: 0}, {X: 20, Y: 0}}

func TestPolygonToMultiPolygon_HoleAttachedToOuter(t *testing.T) {
	mp := polygonToMultiPolygon(shpPolygon(outerCW, holeCCW, secondCW))
	require.NotNil(t, mp)
	assert.Equal(t, 2, mp.NumPolygons())
	assert.Equal(t, 2, mp.Polygon(0).NumLinearRings())
	assert.Equal(t, 1, mp.Polygon(1).NumLinearRings())
	assert.Equal(t, 4326, mp.SRID())
}

func TestPolygonToMultiPolygon_Degenerate(t *testing.T) {
	assert.Nil(t, polygonToMultiPolygon(nil))
	assert.Nil(t, polygonToMultiPolygon(&shp.Polygon{}))
	assert.Nil(t, polygonToMultiPolygon(shpPolygon([]shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})))
}

func TestReadShapefile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neighbourhoods.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("PRI_NEIGH", 40)}))

	rows := []struct {
		name  string
		shape *shp.Polygon
	}{
		{"Lincoln Park", shpPolygon(outerCW, holeCCW)},
		{"", shpPolygon(secondCW)},
		{"Loop", shpPolygon(secondCW)},
	}
	for _, r := range rows {
		idx := w.Write(r.shape)
		require.NoError(t, w.WriteAttribute(int(idx), 0, r.name))
	}
	w.Close()

	// go-shp v0.1.1 names the attribute table "<base>dbf", without the dot.
	require.NoError(t, os.Rename(filepath.Join(dir, "neighbourhoodsdbf"), filepath.Join(dir, "neighbourhoods.dbf")))

	polys, err := ReadShapefile(path, "pri_neigh")
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.Equal(t, "Lincoln Park", polys[0].Name)
	assert.Equal(t, "Loop", polys[1].Name)
	assert.IsType(t, &geom.MultiPolygon{}, polys[0].Geometry)

	loc := NewLocator(polys)
	_, ok := loc.Locate(5, 5)
	assert.False(t, ok, "point in hole")
	name, ok := loc.Locate(1, 1)
	assert.True(t, ok)
	assert.Equal(t, "Lincoln Park", name)

	_, err = ReadShapefile(path, "missing_field")
	assert.Error(t, err)
}

func TestReadShapefile_Missing(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "none.shp"), "name")
	assert.Error(t, err)
}
