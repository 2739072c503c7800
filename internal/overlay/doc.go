// Package overlay builds the map and chart payloads served to clients:
// recommendation styles, price trend charts, the listing density
// choropleth, heatmap points, price bubbles and GeoJSON feature collections.
package overlay
