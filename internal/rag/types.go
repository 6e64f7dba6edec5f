package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks minpaku-ai/internal/rag Engine

// SearchResult is a document projection with the similarity score computed by
// the vector index. Produced per query, never persisted.
type SearchResult struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Category   string  `json:"category"`
	Similarity float32 `json:"similarity"`
}

// DefaultThreshold is the similarity floor for conversational queries. It is
// deliberately low: guest questions rarely share exact wording with stored
// text, so recall matters more than precision here. High thresholds are only
// useful for near-duplicate detection.
const DefaultThreshold = 0.1

// RetrievalParams maps a requested detail level to the two knobs that bound
// total prompt size: how many results to fetch and how many runes each may
// contribute. The knobs scale inversely so a "detailed" answer cannot blow
// up the prompt.
func RetrievalParams(detail string) (matchCount, perResultBudget int) {
	switch detail {
	case "brief":
		return 3, 600
	case "detailed":
		return 10, 200
	default: // "normal" and anything unrecognized
		return 5, 400
	}
}
