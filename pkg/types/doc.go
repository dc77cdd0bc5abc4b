// Package types defines the data contracts shared by the hestia search
// pipeline: the query filter produced by intent extraction, the property
// candidates returned by the graph filter, and the scored results of the
// similarity rerank. The package is pure data and carries no behavior
// beyond small validity helpers.
package types
