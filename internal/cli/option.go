package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/wp4bd/internal/adapter"
)

// OptionValue is one resolved option.
type OptionValue struct {
	Name  string `json:"option_name"`
	Value any    `json:"option_value"`
}

// NewOptionCommand creates the option command.
func NewOptionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "option [name...]",
		Short: "Resolve get_option() values",
		Long: `Resolve options the way get_option() does. Names without a dedicated
resolver are read from the wp4bd.options configuration object and
resolve to false when absent.

Without arguments every option with a dedicated resolver is listed.

Example:
  wp4bd option blogname posts_per_page
  wp4bd option --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOption(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runOption(opts *RootOptions, names []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sess, err := openSession(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(names) == 0 {
		names = adapter.OptionNames()
	}

	values := make([]OptionValue, len(names))
	for i, name := range names {
		values[i] = OptionValue{
			Name:  name,
			Value: adapter.GetOption(cmd.Context(), sess.store, sess.env, name),
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(values)
	}

	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v.Name, v.Value}
	}
	formatter.Table([]string{"option_name", "option_value"}, rows)
	return nil
}
