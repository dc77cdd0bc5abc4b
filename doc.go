// Package hestia answers natural-language real-estate queries by
// combining structured graph filtering with semantic vector reranking.
//
// A query like "楠梓區 3房 1000萬以內，要安靜" runs through three stages:
// an LLM extracts hard constraints (district, bedrooms, price cap) and
// soft requirements ("安靜"); the hard constraints filter a Neo4j
// property graph into a bounded candidate set; the soft requirements
// are embedded and candidates are reranked by cosine similarity against
// that query vector.
//
// The package also ships the offline jobs that keep the graph usable:
// importing cleaned property documents and backfilling text embeddings.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := hestia.NewClient(cfg, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	results, err := client.Search(ctx, "楠梓區 3房 1000萬以內", 0, 0)
package hestia
