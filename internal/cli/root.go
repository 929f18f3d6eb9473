package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roach88/wp4bd/internal/config"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "WP4BD"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string

	// Viper resolves flags and WP4BD_* environment variables. Nil means
	// only the fields above are consulted.
	Viper *viper.Viper
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wp4bd CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Viper: newViper()}

	cmd := &cobra.Command{
		Use:   "wp4bd",
		Short: "wp4bd - WordPress themes on Backdrop content",
		Long: `Run WordPress-style data access against a Backdrop-shaped content store.

Queries written for $wpdb and WP_Query are classified, executed against
nodes, accounts, taxonomy terms and configuration, and returned as posts,
users, terms and options.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "path to CUE configuration file")
	flags.StringVar(&opts.Database, "db", "", "path to SQLite content store (overrides config)")

	_ = opts.Viper.BindPFlag("config", flags.Lookup("config"))
	_ = opts.Viper.BindPFlag("database", flags.Lookup("db"))

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewLoopCommand(opts))
	cmd.AddCommand(NewOptionCommand(opts))

	return cmd
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{"config", "database", "base_url", "language", "timezone", "posts_per_page", "table_prefix", "theme", "fixture"} {
		_ = v.BindEnv(key)
	}
	return v
}

// Settings loads the configuration file, then applies flag and
// environment overrides.
func (o *RootOptions) Settings() (*config.Config, error) {
	path := o.ConfigPath
	if o.Viper != nil && path == "" {
		path = o.Viper.GetString("config")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := o.Viper; v != nil {
		overrideString(v, "database", &cfg.Database)
		overrideString(v, "base_url", &cfg.BaseURL)
		overrideString(v, "language", &cfg.Language)
		overrideString(v, "timezone", &cfg.Timezone)
		overrideString(v, "table_prefix", &cfg.TablePrefix)
		overrideString(v, "theme", &cfg.Theme)
		overrideString(v, "fixture", &cfg.Fixture)
		if v.IsSet("posts_per_page") {
			n := v.GetInt("posts_per_page")
			if n <= 0 {
				return nil, fmt.Errorf("posts_per_page must be positive, got %q", v.GetString("posts_per_page"))
			}
			cfg.PostsPerPage = n
		}
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// Logger returns a text logger on w. Verbose enables Debug records.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
