package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wp4bd/internal/classify"
	"github.com/roach88/wp4bd/internal/loop"
	"github.com/roach88/wp4bd/internal/wp"
)

// LoopResult is the JSON payload of the loop command.
type LoopResult struct {
	Mode        string       `json:"mode"`
	PostCount   int          `json:"post_count"`
	FoundPosts  int          `json:"found_posts"`
	MaxNumPages int          `json:"max_num_pages"`
	Flags       []string     `json:"flags"`
	Events      []loop.Event `json:"events"`
	Posts       []*wp.Post   `json:"posts"`
}

// NewLoopCommand creates the loop command.
func NewLoopCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loop [query-args]",
		Short: "Run the Loop for WP_Query-style arguments",
		Long: `Resolve WP_Query arguments given as a query string, then iterate the
resulting posts the way a theme template does.

Example:
  wp4bd loop
  wp4bd loop "post_type=page&orderby=title&order=ASC"
  wp4bd loop "name=hello-world"
  wp4bd loop "posts_per_page=2&paged=2"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			return runLoop(rootOpts, raw, cmd)
		},
	}
	return cmd
}

func runLoop(opts *RootOptions, raw string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	args, err := classify.ParseArgs(raw)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidInput, "invalid query arguments", err)
	}

	sess, err := openSession(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	var events []loop.Event
	q := loop.New(cmd.Context(), sess.exec, sess.env, args,
		loop.WithLogger(sess.logger),
		loop.WithListener(func(ev loop.Event, _ *loop.Query) {
			events = append(events, ev)
		}),
	)
	if err := q.Err(); err != nil {
		_ = formatter.Error(ErrCodeQueryFailed, fmt.Sprintf("query failed: %v", err), nil)
		return WrapExitError(ExitFailure, "query failed", err)
	}

	posts := make([]*wp.Post, 0, q.PostCount())
	for q.HavePosts() {
		q.ThePost()
		posts = append(posts, q.Post())
	}

	result := LoopResult{
		Mode:        q.Mode().String(),
		PostCount:   q.PostCount(),
		FoundPosts:  q.FoundPosts(),
		MaxNumPages: q.MaxNumPages(),
		Flags:       q.Conditionals(),
		Events:      events,
		Posts:       posts,
	}
	if result.Events == nil {
		result.Events = []loop.Event{}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if q.Is404() {
		fmt.Fprintln(formatter.Writer, "Nothing found (404)")
	} else if len(posts) == 0 {
		fmt.Fprintln(formatter.Writer, "(no posts)")
	} else {
		rows := make([][]any, len(posts))
		for i, p := range posts {
			rows[i] = []any{p.ID, p.PostTitle, p.PostType, p.PostStatus, p.PostName, p.PostDate}
		}
		formatter.Table([]string{"ID", "post_title", "post_type", "post_status", "post_name", "post_date"}, rows)
	}
	fmt.Fprintf(formatter.Writer, "mode=%s found_posts=%d max_num_pages=%d flags=%s\n",
		result.Mode, result.FoundPosts, result.MaxNumPages, strings.Join(result.Flags, ","))
	formatter.VerboseLog("Events: %v", events)
	return nil
}
