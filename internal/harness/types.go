package harness

import (
	"github.com/roach88/wp4bd/internal/bridge"
	"github.com/roach88/wp4bd/internal/loop"
	"github.com/roach88/wp4bd/internal/wp"
)

// TraceEvent is one executed step and what it returned.
type TraceEvent struct {
	Step   int    `json:"step"`
	Call   string `json:"call"`
	Query  string `json:"query,omitempty"`
	Args   string `json:"args,omitempty"`
	Result any    `json:"result"`
}

// LoopSummary is the trace result of a loop step.
type LoopSummary struct {
	Mode        string       `json:"mode"`
	IDs         []int64      `json:"ids"`
	FoundPosts  int          `json:"found_posts"`
	MaxNumPages int          `json:"max_num_pages"`
	Flags       []string     `json:"flags"`
	Events      []loop.Event `json:"events"`

	posts []*wp.Post
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Log is the facade's query log after the last step.
	Log []bridge.LogEntry `json:"log"`

	// Errors describes every failed expectation.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Log:    []bridge.LogEntry{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
