package search

import "strings"

// BuildQueryText joins the soft requirements into the single text that is
// embedded for reranking. Blank entries are dropped; the remainder are
// joined with a Chinese semicolon under a short instruction prefix so the
// embedding captures the requirements as one need statement.
func BuildQueryText(softRequirements []string) string {
	parts := make([]string, 0, len(softRequirements))
	for _, req := range softRequirements {
		if trimmed := strings.TrimSpace(req); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "需求：" + strings.Join(parts, "；")
}
