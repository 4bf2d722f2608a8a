// Package export renders an in-memory Expe into human-readable report
// formats. Every function here is a pure Expe→file leaf: none of them
// mutate the Expe or know anything about how it was produced.
package export

import "github.com/lucas-reyes/ragtime-go/internal/expe"

// row is the flattened shape both renderers iterate over: one row per
// (question, answer) pair, since that's the natural grain of a report.
type row struct {
	Question string
	Model    string
	Answer   string
	Human    string
	Auto     string
}

func rowsFor(e *expe.Expe) []row {
	var rows []row
	for _, qa := range e.QAs {
		if len(qa.Answers.Items) == 0 {
			rows = append(rows, row{Question: qa.Question.Text})
			continue
		}
		for _, a := range qa.Answers.Items {
			r := row{
				Question: qa.Question.Text,
				Model:    a.ModelName(),
				Answer:   a.Text,
			}
			if a.Eval != nil {
				if a.Eval.Human != nil {
					r.Human = formatScore(*a.Eval.Human)
				}
				if a.Eval.Auto != nil {
					r.Auto = formatScore(*a.Eval.Auto)
				}
			}
			rows = append(rows, r)
		}
	}
	return rows
}

func formatScore(f float64) string {
	return trimTrailingZeros(f)
}
