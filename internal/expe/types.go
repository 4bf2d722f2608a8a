// Package expe holds the ragtime experiment data model: Expe, QA, and the
// text-bearing entities (Question, Chunk, Fact, Answer, Eval, LLMAnswer) that
// a stage generator fills in as a pipeline runs.
//
// This package is a leaf dependency: it knows nothing about prompters, LLM
// drivers, or generators, so none of those packages need to import each
// other through it.
package expe

import "time"

// Meta is a free-form bag of diagnostic and provenance fields attached to
// almost every entity in the model. Stage generators write into it rather
// than raising errors when something is merely unusual (e.g. malformed model
// output, a skipped precondition).
type Meta map[string]interface{}

// Question is the text of a single question plus its metadata.
type Question struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta,omitempty"`
}

// Chunk is a snippet of retrieved context. DisplayName and PageNumber are
// conventionally stored in Meta under "display_name" and "page_number" by
// Retriever implementations, and read from there by the retrieval-aware
// Answer prompter.
type Chunk struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta,omitempty"`
}

// DisplayName returns the chunk's "display_name" meta field, or "".
func (c *Chunk) DisplayName() string {
	if c == nil || c.Meta == nil {
		return ""
	}
	s, _ := c.Meta["display_name"].(string)
	return s
}

// PageNumber returns the chunk's "page_number" meta field, or 0.
func (c *Chunk) PageNumber() int {
	if c == nil || c.Meta == nil {
		return 0
	}
	switch v := c.Meta["page_number"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Fact is one atomic, numbered proposition extracted from a validated answer.
// Its leading "N. " prefix is enforced by the Fact prompter's post-processing.
type Fact struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta,omitempty"`
}

// Prompt is the pair of system/user strings sent to an LLM.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// LLMAnswer is the immutable record of one model completion. Replacing it
// means recomputing it from scratch, never mutating it in place.
type LLMAnswer struct {
	Text      string     `json:"text"`
	Prompt    *Prompt    `json:"prompt,omitempty"`
	Name      string     `json:"name,omitempty"`
	FullName  string     `json:"full_name,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Duration  *float64   `json:"duration,omitempty"`
	Cost      *float64   `json:"cost,omitempty"`
}

// withLLMAnswer is embedded by every object that carries a single generation.
type withLLMAnswer struct {
	LLMAnswer *LLMAnswer `json:"llm_answer,omitempty"`
}

// Eval is the machine (and optionally human) score of an Answer against a
// QA's Facts.
type Eval struct {
	Text  string   `json:"text"`
	Meta  Meta     `json:"meta,omitempty"`
	Human *float64 `json:"human,omitempty"`
	Auto  *float64 `json:"auto,omitempty"`
	withLLMAnswer
}

// Answer is a candidate response from one LLM to one question.
type Answer struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta,omitempty"`
	withLLMAnswer
	Eval *Eval `json:"eval,omitempty"`
}

// Answers is an ordered list of Answer, one per configured LLM.
type Answers struct {
	Items []Answer `json:"items"`
	Meta  Meta     `json:"meta,omitempty"`
}

// Facts is the list of Fact extracted in a single LLM generation, plus the
// LLMAnswer that produced them.
type Facts struct {
	Items []Fact `json:"items"`
	Meta  Meta   `json:"meta,omitempty"`
	withLLMAnswer
}

// Chunks is an ordered list of retrieved Chunk.
type Chunks struct {
	Items []Chunk `json:"items"`
	Meta  Meta    `json:"meta,omitempty"`
}

// QA is one row of the experiment: a Question plus whatever chunks, facts,
// and answers the pipeline's stages have filled in so far.
type QA struct {
	Question Question `json:"question"`
	Chunks   Chunks   `json:"chunks"`
	Facts    Facts    `json:"facts"`
	Answers  Answers  `json:"answers"`
	Meta     Meta     `json:"meta,omitempty"`
}

// Expe is the root persisted entity: an ordered experiment record. Order of
// QAs is preserved across load/save; appending never reorders.
type Expe struct {
	Meta Meta   `json:"meta,omitempty"`
	QAs  []QA   `json:"items"`
	Path string `json:"-"`
}

// New returns an empty Expe ready to be appended to.
func New() *Expe {
	return &Expe{Meta: Meta{}}
}

// Len returns the number of QAs.
func (e *Expe) Len() int { return len(e.QAs) }

// Append adds a QA at the end, preserving input order.
func (e *Expe) Append(qa QA) { e.QAs = append(e.QAs, qa) }
