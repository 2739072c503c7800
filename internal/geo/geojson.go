package geo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/rentsignal/internal/model"
)

// ReadGeoJSON reads neighborhood polygons from a GeoJSON FeatureCollection.
// The display name of each feature is the value of property, matched
// case-insensitively. Features without a name or without Polygon or
// MultiPolygon geometry are skipped.
func ReadGeoJSON(r io.Reader, property string) ([]model.NeighborhoodPolygon, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, eris.Wrap(err, "geo: decode geojson")
	}

	out := make([]model.NeighborhoodPolygon, 0, len(fc.Features))
	var skipped int
	for _, f := range fc.Features {
		if f == nil {
			skipped++
			continue
		}
		name := propertyString(f.Properties, property)
		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			skipped++
			continue
		}
		if name == "" {
			skipped++
			continue
		}
		out = append(out, model.NeighborhoodPolygon{Name: name, Geometry: f.Geometry})
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped geojson features",
			zap.String("property", property),
			zap.Int("skipped", skipped),
		)
	}

	return out, nil
}

func propertyString(props map[string]interface{}, key string) string {
	v, ok := props[key]
	if !ok {
		for k, val := range props {
			if strings.EqualFold(k, key) {
				v, ok = val, true
				break
			}
		}
	}
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
