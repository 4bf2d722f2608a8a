package retriever

import (
	"context"
	"database/sql"
	"fmt"

	// registers the "postgres" sql.DB driver
	_ "github.com/lib/pq"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// PostgresRetriever runs a full-text-search query against a table of
// pre-ingested document passages and returns the top matches as Chunks.
// Document ingestion and indexing themselves are out of this repo's scope;
// this retriever only reads from a table something else has populated.
type PostgresRetriever struct {
	DB          *sql.DB
	Table       string // e.g. "document_chunks"
	TextColumn  string // e.g. "body"
	TitleColumn string // e.g. "title", used for the chunk's display name
	Limit       int    // defaults to 5
}

// NewPostgresRetriever opens a connection using the "postgres" driver
// registered by lib/pq.
func NewPostgresRetriever(dsn, table, textColumn, titleColumn string) (*PostgresRetriever, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("retriever: opening postgres: %w", err)
	}
	return &PostgresRetriever{DB: db, Table: table, TextColumn: textColumn, TitleColumn: titleColumn}, nil
}

// Retrieve runs a plainto_tsquery full-text search over TextColumn, ranked
// by ts_rank, and returns the top Limit rows as Chunks.
func (p *PostgresRetriever) Retrieve(ctx context.Context, q expe.Question) (expe.Chunks, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 5
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, ts_rank(to_tsvector('english', %s), plainto_tsquery('english', $1)) AS rank
		FROM %s
		WHERE to_tsvector('english', %s) @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC
		LIMIT $2`,
		p.TitleColumn, p.TextColumn, p.TextColumn, p.Table, p.TextColumn)

	rows, err := p.DB.QueryContext(ctx, query, q.Text, limit)
	if err != nil {
		return expe.Chunks{}, fmt.Errorf("retriever: querying %s: %w", p.Table, err)
	}
	defer rows.Close()

	var chunks expe.Chunks
	for rows.Next() {
		var title, text string
		var rank float64
		if err := rows.Scan(&title, &text, &rank); err != nil {
			return expe.Chunks{}, fmt.Errorf("retriever: scanning row: %w", err)
		}
		chunks.Items = append(chunks.Items, expe.Chunk{
			Text: text,
			Meta: expe.Meta{"display_name": title, "rank": rank},
		})
	}
	if err := rows.Err(); err != nil {
		return expe.Chunks{}, err
	}
	return chunks, nil
}
