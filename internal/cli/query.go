package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/wp4bd/internal/bridge"
	"github.com/roach88/wp4bd/internal/wp"
)

// Facade read methods selectable with --method.
const (
	MethodResults = "results"
	MethodRow     = "row"
	MethodVar     = "var"
	MethodCol     = "col"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Method string
	Shape  string
	Args   []string
	Log    bool
}

// QueryResult is the JSON payload of the query command.
type QueryResult struct {
	Query     string            `json:"query"`
	Method    string            `json:"method"`
	Result    any               `json:"result"`
	RequestID string            `json:"request_id"`
	Log       []bridge.LogEntry `json:"log,omitempty"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Answer a $wpdb-style query from the content store",
		Long: `Classify a WordPress SQL string, run it against the content store and
print the translated result.

Placeholders %d, %f and %s are filled from --arg values in order.

Example:
  wp4bd query "SELECT * FROM wp_posts WHERE post_type = 'post' LIMIT 5"
  wp4bd query --method var "SELECT COUNT(*) FROM wp_posts WHERE post_status = 'publish'"
  wp4bd query --shape ARRAY_A --arg 3 "SELECT ID, post_title FROM wp_posts WHERE ID = %d"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Method, "method", "m", MethodResults, "facade method (results|row|var|col)")
	cmd.Flags().StringVar(&opts.Shape, "shape", "OBJECT", "output shape (OBJECT|ARRAY_A|ARRAY_N)")
	cmd.Flags().StringArrayVar(&opts.Args, "arg", nil, "placeholder value (repeatable)")
	cmd.Flags().BoolVar(&opts.Log, "log", false, "print the query log")

	return cmd
}

func runQuery(opts *QueryOptions, query string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	shape, err := wp.ParseOutputShape(opts.Shape)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidInput, "invalid --shape", err)
	}
	switch opts.Method {
	case MethodResults, MethodRow, MethodVar, MethodCol:
	default:
		return commandError(formatter, ErrCodeInvalidInput, "invalid --method",
			fmt.Errorf("unknown method %q: must be one of results, row, var, col", opts.Method))
	}

	sess, err := openSession(opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(opts.Args) > 0 {
		args := make([]any, len(opts.Args))
		for i, a := range opts.Args {
			args[i] = a
		}
		query = bridge.Prepare(query, args...)
		formatter.VerboseLog("Prepared query: %s", query)
	}

	db := sess.bridge()
	ctx := cmd.Context()

	var result any
	switch opts.Method {
	case MethodResults:
		result = db.GetResults(ctx, query, shape)
	case MethodRow:
		result = db.GetRow(ctx, query, shape)
	case MethodVar:
		result = db.GetVar(ctx, query)
	case MethodCol:
		result = db.GetCol(ctx, query)
	}

	if formatter.Format == "json" {
		out := QueryResult{Query: query, Method: opts.Method, Result: result, RequestID: db.RequestID}
		if opts.Log {
			out.Log = db.QueryLog()
		}
		return formatter.Success(out)
	}

	switch opts.Method {
	case MethodResults:
		renderRows(formatter, result.([]any))
	case MethodRow:
		if result == nil {
			fmt.Fprintln(formatter.Writer, "(no row)")
		} else {
			renderRows(formatter, []any{result})
		}
	case MethodVar:
		if result == nil {
			fmt.Fprintln(formatter.Writer, "NULL")
		} else {
			fmt.Fprintln(formatter.Writer, result)
		}
	case MethodCol:
		rows := make([][]any, len(result.([]any)))
		for i, v := range result.([]any) {
			rows[i] = []any{v}
		}
		formatter.Table([]string{"value"}, rows)
	}

	if opts.Log {
		renderLog(formatter, db.QueryLog())
	}
	return nil
}

// renderRows prints a facade result set. Objects and associative rows
// use their column names; positional rows use their indexes.
func renderRows(formatter *OutputFormatter, results []any) {
	if len(results) == 0 {
		fmt.Fprintln(formatter.Writer, "(no rows)")
		return
	}

	var header []string
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		switch v := r.(type) {
		case wp.Object:
			row := wp.RowOf(v)
			if header == nil {
				header = row.Keys()
			}
			rows = append(rows, row.Values())
		case wp.Row:
			if header == nil {
				header = v.Keys()
			}
			rows = append(rows, v.Values())
		case []any:
			if header == nil {
				header = make([]string, len(v))
				for i := range v {
					header[i] = strconv.Itoa(i)
				}
			}
			rows = append(rows, v)
		default:
			if header == nil {
				header = []string{"value"}
			}
			rows = append(rows, []any{v})
		}
	}
	formatter.Table(header, rows)
}

func renderLog(formatter *OutputFormatter, entries []bridge.LogEntry) {
	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{e.Seq, e.Method, e.Query}
	}
	formatter.Table([]string{"sequence", "method", "query"}, rows)
}
