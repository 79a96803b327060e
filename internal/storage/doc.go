// Package storage persists simulation results and catalogs them.
//
// Every run gets its own directory named {timestamp}_{config stem} that
// holds a verbatim copy of the configuration, the summary plot, the
// trajectory columns (results.h5, or one text file per column plus
// results.npy) and a metadata.json provenance record.
package storage
