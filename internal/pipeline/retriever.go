package pipeline

import (
	"fmt"

	"github.com/lucas-reyes/ragtime-go/internal/generator"
	"github.com/lucas-reyes/ragtime-go/internal/retriever"
)

// buildRetriever resolves a pipeline config's retriever block to a concrete
// backend. cfg.Kind selects "web" or "postgres", the two reference
// Retrievers this repo ships (a Retriever is otherwise an external
// collaborator behind a narrow interface).
func buildRetriever(cfg *RetrieverConfig) (generator.Retriever, error) {
	switch cfg.Kind {
	case "web":
		if len(cfg.URLs) == 0 {
			return nil, fmt.Errorf("retriever: kind \"web\" requires urls")
		}
		return retriever.WebRetriever{URLs: cfg.URLs, Selector: cfg.Selector}, nil
	case "postgres":
		if cfg.DSN == "" || cfg.Table == "" {
			return nil, fmt.Errorf("retriever: kind \"postgres\" requires dsn and table")
		}
		return retriever.NewPostgresRetriever(cfg.DSN, cfg.Table, cfg.TextColumn, cfg.TitleColumn)
	default:
		return nil, fmt.Errorf("retriever: unknown kind %q", cfg.Kind)
	}
}
