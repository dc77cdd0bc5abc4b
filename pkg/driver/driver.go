// Package driver provides access to the property graph store.
//
// The search core depends only on the generic query/parameter/row contract
// defined by GraphDriver, not on any specific query language surface. The
// Neo4j implementation owns a pooled connection that is safe for concurrent
// use; it is constructed once at process start and released at shutdown.
package driver

import "context"

// GraphDriver is the query/parameter/row contract against the graph store.
// Implementations must be safe for concurrent use.
type GraphDriver interface {
	// ExecuteRead runs a parameterized read query and returns row-oriented
	// results, one map per record keyed by the query's return aliases.
	ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)

	// ExecuteWrite runs a parameterized write query.
	ExecuteWrite(ctx context.Context, query string, params map[string]any) error

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}
