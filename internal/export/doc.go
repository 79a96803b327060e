// Package export renders run summaries: the basic-plot.png image, its
// re-loadable basic-plot.json snapshot and SVG projections.
package export
