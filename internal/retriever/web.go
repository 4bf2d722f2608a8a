package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// WebRetriever pulls Chunks by scraping a fixed list of pages and splitting
// each page's body text into paragraph-sized Chunks. It ignores the
// Question's text for page selection — every configured URL is always
// scraped — since ranking pages by relevance is a search concern this
// retriever doesn't attempt; it's the simplest possible "give me chunks
// from these pages" backend a pipeline config can point at.
type WebRetriever struct {
	URLs     []string
	Selector string // CSS selector for the text container; defaults to "p"
}

// Retrieve scrapes every configured URL with a fresh collector per call,
// so concurrent QAs (the generator runs one goroutine per QA) never share
// collector state.
func (w WebRetriever) Retrieve(ctx context.Context, q expe.Question) (expe.Chunks, error) {
	selector := w.Selector
	if selector == "" {
		selector = "p"
	}

	var chunks expe.Chunks
	var scrapeErr error

	c := colly.NewCollector()
	c.OnHTML(selector, func(e *colly.HTMLElement) {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return
		}
		chunks.Items = append(chunks.Items, expe.Chunk{
			Text: text,
			Meta: expe.Meta{"display_name": e.Request.URL.String()},
		})
	})
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("retriever: scraping %s: %w", r.Request.URL, err)
	})

	for _, url := range w.URLs {
		select {
		case <-ctx.Done():
			return expe.Chunks{}, ctx.Err()
		default:
		}
		if err := c.Visit(url); err != nil {
			return expe.Chunks{}, fmt.Errorf("retriever: visiting %s: %w", url, err)
		}
	}
	c.Wait()

	if scrapeErr != nil {
		return expe.Chunks{}, scrapeErr
	}
	return chunks, nil
}
