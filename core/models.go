package core

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored retrieval examples.
// It is derived from the example's content so that re-seeding the same
// corpus never produces duplicates.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a prior conversation turn.
type Role string

const (
	// RoleUser marks a turn written by the person asking questions.
	RoleUser Role = "user"
	// RoleAssistant marks a turn produced by the service.
	RoleAssistant Role = "assistant"
)

// Turn is a single prior message in the conversation.
type Turn struct {
	Role    Role
	Content string
}

// Question is the immutable input to the pipeline: the current free-text
// question, optional prior turns, and an optional opaque tenant token.
type Question struct {
	Text  string
	Turns []Turn // Prior conversation, oldest first
	Token string // Opaque tenant token; empty means no tenant context
}

// contextTurns is the number of trailing turns folded into the full question.
const contextTurns = 3

// FullText renders the question together with its most recent prior turns,
// in the form the language model receives. With no prior turns it is the
// question text unchanged.
func (q Question) FullText() string {
	turns := q.Turns
	if len(turns) > contextTurns {
		turns = turns[len(turns)-contextTurns:]
	}
	if len(turns) == 0 {
		return q.Text
	}
	var b strings.Builder
	for i, t := range turns {
		fmt.Fprintf(&b, "Previous message %d (%s): %s\n", i+1, t.Role, t.Content)
	}
	b.WriteString("Current question: ")
	b.WriteString(q.Text)
	return b.String()
}

// TenantContext identifies which database a structured lookup runs against.
// It is derived once per request from the question's token.
type TenantContext struct {
	DatabaseName  string
	LoginMasterID string
	OrgID         string
}

// Intent is the routing decision for a question. It is a closed set:
// DirectAnswer or StructuredLookup.
type Intent interface {
	intent()
	// Tag returns the short label carried in the answer envelope.
	Tag() string
}

// DirectAnswer is an intent that already carries the final answer text.
type DirectAnswer struct {
	Text string
}

func (DirectAnswer) intent()     {}
func (DirectAnswer) Tag() string { return "general" }

// StructuredLookup routes the question to SQL generation and execution.
type StructuredLookup struct{}

func (StructuredLookup) intent()     {}
func (StructuredLookup) Tag() string { return "SQL-Only" }

// GeneratedQuery is a sanitized read-only SQL statement together with the
// question it answers and the retrieved example context that shaped it.
type GeneratedQuery struct {
	Statement string
	Question  Question
	Examples  string // Retrieved example block, empty when none matched
}

// ResultSet holds materialized tabular results: column names in order and
// rows aligned to them. A ResultSet with zero rows is valid.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// ColumnIndex returns the position of the named column, or -1.
func (rs *ResultSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Example is a stored retrieval example: a question/SQL pair used as
// few-shot context during query generation.
type Example struct {
	Id         ID
	Content    string
	Vector     []float32 // Embedding, normalized to unit length
	InsertedAt time.Time
}

// ExampleMatch is an example returned from similarity search with its score.
type ExampleMatch struct {
	Example *Example
	Score   float32
}

// AnswerEnvelope is the terminal artifact of one pipeline run.
// Answer holds either a plain string or a structured JSON value
// (map[string]any or []any). SQL carries the executed or attempted
// statement when one was generated.
type AnswerEnvelope struct {
	Intent string `json:"intent"`
	Answer any    `json:"answer,omitempty"`
	SQL    string `json:"sql,omitempty"`
	Error  string `json:"error,omitempty"`
}
