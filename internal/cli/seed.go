package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/wp4bd/internal/fixture"
)

// SeedResult is the JSON payload of the seed command.
type SeedResult struct {
	Database string        `json:"database"`
	Fixture  string        `json:"fixture"`
	Stats    fixture.Stats `json:"stats"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [fixture.yaml]",
		Short: "Load a YAML fixture into the content store",
		Long: `Write the nodes, accounts, terms, tags and configuration of a YAML
fixture into the content store. Records with the same identifier are
replaced, so seeding twice is safe.

Without an argument the fixture named in the configuration is used.

Example:
  wp4bd seed --db ./site.db ./site.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runSeed(rootOpts, path, cmd)
		},
	}
	return cmd
}

func runSeed(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sess, err := openSession(opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if path == "" {
		path = sess.cfg.Fixture
	}
	if path == "" {
		return commandError(formatter, ErrCodeInvalidInput, "no fixture given", fmt.Errorf("pass a fixture path or set fixture in the configuration"))
	}

	formatter.VerboseLog("Loading fixture %s", path)
	fx, err := fixture.Load(path)
	if err != nil {
		return commandError(formatter, ErrCodeFixture, "invalid fixture", err)
	}

	stats, err := fx.Apply(cmd.Context(), sess.store)
	if err != nil {
		return commandError(formatter, ErrCodeSeedFailed, "seeding failed", err)
	}
	sess.logger.Info("fixture applied", "fixture", fx.Name, "database", sess.cfg.Database,
		"nodes", stats.Nodes, "accounts", stats.Accounts, "terms", stats.Terms)

	if formatter.Format == "json" {
		return formatter.Success(SeedResult{Database: sess.cfg.Database, Fixture: path, Stats: stats})
	}
	return formatter.Success(fmt.Sprintf("✓ Seeded %s: %d node(s), %d account(s), %d term(s), %d tag(s), %d config object(s)",
		sess.cfg.Database, stats.Nodes, stats.Accounts, stats.Terms, stats.Tags, stats.Config))
}
