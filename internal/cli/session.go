package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wp4bd/internal/adapter"
	"github.com/roach88/wp4bd/internal/bridge"
	"github.com/roach88/wp4bd/internal/config"
	"github.com/roach88/wp4bd/internal/executor"
	"github.com/roach88/wp4bd/internal/store"
)

// session is one command's view of the configured content store.
type session struct {
	cfg    *config.Config
	env    adapter.Env
	store  *store.Store
	exec   *executor.Executor
	logger *slog.Logger
}

// openSession resolves settings and opens the content store. Failures are
// reported through formatter and returned as ExitCommandError.
func openSession(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter) (*session, error) {
	cfg, err := opts.Settings()
	if err != nil {
		return nil, commandError(formatter, ErrCodeConfig, "invalid configuration", err)
	}
	env, err := cfg.Env()
	if err != nil {
		return nil, commandError(formatter, ErrCodeConfig, "invalid configuration", err)
	}

	logger := opts.Logger(cmd.ErrOrStderr())
	formatter.VerboseLog("Opening content store %s", cfg.Database)
	st, err := store.Open(cfg.Database, store.WithLogger(logger))
	if err != nil {
		return nil, commandError(formatter, ErrCodeStore, "failed to open content store", err)
	}

	exec := executor.New(st,
		executor.WithPageSize(cfg.PostsPerPage),
		executor.WithLogger(logger),
	)
	return &session{cfg: cfg, env: env, store: st, exec: exec, logger: logger}, nil
}

// bridge returns a fresh facade, one per logical request.
func (s *session) bridge() *bridge.DB {
	return bridge.New(s.exec, s.store, s.env,
		bridge.WithPrefix(s.cfg.TablePrefix),
		bridge.WithLogger(s.logger),
	)
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing content store", "error", err)
	}
}

// commandError reports err and returns an ExitCommandError.
func commandError(formatter *OutputFormatter, code, message string, err error) error {
	details := any(nil)
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		details = map[string]string{"field": cfgErr.Field, "message": cfgErr.Message}
	}
	_ = formatter.Error(code, fmt.Sprintf("%s: %v", message, err), details)
	return WrapExitError(ExitCommandError, message, err)
}
