// Package generator implements the three stage generators (Answer, Fact,
// Eval) and the concurrent per-QA driver that runs any of them across a
// whole Expe, checkpointing progress and snapshotting on a per-item failure.
package generator

import (
	"context"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// StageGenerator is the "process_one" abstraction every stage generator
// implements: given one QA, mutate it in place per the stage's rules.
// A returned error aborts only that QA's processing; the driver treats it
// as "skip this item" and continues with the rest of the Expe.
type StageGenerator interface {
	ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error
}
