package generator

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// progressReporter renders a one-line progress bar to stdout as QAs
// complete. It uses bubbles/progress's static ViewAs rendering rather than
// running a full bubbletea.Program: the driver is a headless batch
// process, not a full-screen TUI, so there is no interactive event loop to
// hand control to — only the bar's rendering is reused.
type progressReporter struct {
	mu      sync.Mutex
	total   int
	done    int
	enabled bool
	bar     progress.Model
	label   lipgloss.Style
}

func newProgressReporter(total int, enabled bool) *progressReporter {
	return &progressReporter{
		total:   total,
		enabled: enabled,
		bar:     progress.New(progress.WithDefaultGradient()),
		label:   lipgloss.NewStyle().Faint(true),
	}
}

func (p *progressReporter) increment(questionText string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	frac := float64(p.done) / float64(p.total)
	fmt.Fprintf(os.Stdout, "\r%s %s", p.bar.ViewAs(frac), p.label.Render(truncate(questionText, 40)))
	if p.done == p.total {
		fmt.Fprintln(os.Stdout)
	}
}

func (p *progressReporter) finish() {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		fmt.Fprintln(os.Stdout)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
