package export

import (
	"html/template"
	"os"
	"strconv"
	"strings"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// reportTemplate renders one table row per (question, answer) pair. Kept
// deliberately plain: this is a diagnostic report, not a styled document.
const reportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>ragtime report</title></head>
<body>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Question</th><th>Model</th><th>Answer</th><th>Human</th><th>Auto</th></tr>
{{range .}}<tr><td>{{.Question}}</td><td>{{.Model}}</td><td>{{.Answer}}</td><td>{{.Human}}</td><td>{{.Auto}}</td></tr>
{{end}}</table>
</body>
</html>
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// WriteHTML renders e as an HTML report. No third-party HTML templating
// library appears anywhere in the retrieved example pack, so this uses the
// standard library's html/template, whose auto-escaping is exactly what a
// report built from untrusted LLM output needs.
func WriteHTML(e *expe.Expe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, rowsFor(e))
}

// trimTrailingZeros formats a score with no more than 3 decimal places and
// no trailing zeros, so "0.666667" reads as "0.667" and "1.0" reads as "1".
func trimTrailingZeros(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
