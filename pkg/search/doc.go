// Package search orchestrates the hybrid retrieval pipeline over the
// property knowledge graph.
//
// A search runs in three stages:
//   - Intent extraction: the natural-language query is split into hard
//     constraints and soft requirements by an LLM.
//   - Graph filter: hard constraints become a parameterized Cypher query
//     that returns a bounded candidate set with stored embeddings.
//   - Semantic rerank: soft requirements are embedded once and candidates
//     are ordered by cosine similarity against that query vector.
//
// When the graph filter returns nothing the pipeline short-circuits and
// returns an empty result without calling the embedding provider. Stage
// failures surface as typed errors (IntentExtractionError,
// GraphQueryError, EmbeddingProviderError) so callers can map them to
// transport-level responses.
//
// # Usage
//
//	searcher := search.NewSearcher(extractor, retriever, embedder, search.Options{})
//	results, err := searcher.Search(ctx, "楠梓區3房1000萬以內，要安靜", 0, 0)
package search
