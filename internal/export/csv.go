package export

import (
	"encoding/csv"
	"os"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// WriteCSV renders e as a spreadsheet-friendly CSV: one row per
// (question, answer) pair. No third-party spreadsheet/XLSX library appears
// anywhere in the retrieved example pack, so this uses the standard
// library's encoding/csv, which is the closest stdlib equivalent to the
// spec's spreadsheet export.
func WriteCSV(e *expe.Expe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"question", "model", "answer", "human_score", "auto_score"}); err != nil {
		return err
	}
	for _, r := range rowsFor(e) {
		if err := w.Write([]string{r.Question, r.Model, r.Answer, r.Human, r.Auto}); err != nil {
			return err
		}
	}
	return w.Error()
}
