// Package retriever implements reference Retriever components: external
// collaborators that return Chunks for a Question. Neither implementation
// is required by the core generation pipeline, which only depends on the
// generator.Retriever interface — these are concrete backends a pipeline
// config can select by name.
package retriever

import (
	"context"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// Retriever matches generator.Retriever's shape without importing it, so
// this package stays independent of the generator package.
type Retriever interface {
	Retrieve(ctx context.Context, q expe.Question) (expe.Chunks, error)
}
