package bridge

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// LogEntry records one facade call.
type LogEntry struct {
	Method string `json:"method"`
	Query  string `json:"query"`
	Seq    int64  `json:"sequence"`
}

// Method names recorded in the query log.
const (
	MethodQuery      = "query"
	MethodGetResults = "get_results"
	MethodGetVar     = "get_var"
	MethodGetRow     = "get_row"
	MethodGetCol     = "get_col"
	MethodInsert     = "insert"
	MethodUpdate     = "update"
	MethodDelete     = "delete"
)

// Clock hands out strictly increasing log sequence numbers.
type Clock interface {
	Next() int64
}

// counter is the default per-instance Clock. The first call to Next
// returns 1.
type counter struct {
	seq atomic.Int64
}

func (c *counter) Next() int64 {
	return c.seq.Add(1)
}

// IDGenerator produces request IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable request IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
