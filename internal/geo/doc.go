// Package geo reads neighborhood boundaries from GeoJSON and shapefiles and
// locates points inside them.
package geo
