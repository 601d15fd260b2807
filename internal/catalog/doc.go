// Package catalog holds the static equipment registry: footprints, weights,
// compressibility and the necessity rules evaluated against a hiking
// condition. The default catalog is embedded as YAML and loaded once; rule
// logic that cannot be expressed as data (predicates and quantity demands) is
// registered in Go and referenced from the YAML by name.
package catalog
