package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/wp4bd/internal/adapter"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded bridge configuration.
type Config struct {
	BaseURL      string `json:"base_url"`
	Language     string `json:"language"`
	Timezone     string `json:"timezone"`
	PostsPerPage int    `json:"posts_per_page"`
	TablePrefix  string `json:"table_prefix"`
	Theme        string `json:"theme"`
	Database     string `json:"database"`
	Fixture      string `json:"fixture,omitempty"`
}

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the configuration an empty file produces.
func Default() *Config {
	c, err := Parse("default.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return c
}

// Load reads and validates a CUE configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates src against the schema and decodes it. filename is used
// in error positions only.
func Parse(filename string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	c := &Config{}
	if err := v.Decode(c); err != nil {
		return nil, formatCUEError(err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return nil, &Error{
			Field:   "timezone",
			Message: fmt.Sprintf("unknown time zone %q", c.Timezone),
			Pos:     v.LookupPath(cue.ParsePath("timezone")).Pos(),
		}
	}
	return c, nil
}

// Env builds the adapter environment for this configuration.
func (c *Config) Env() (adapter.Env, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return adapter.Env{}, fmt.Errorf("load time zone: %w", err)
	}
	return adapter.Env{
		BaseURL:      c.BaseURL,
		Language:     c.Language,
		Location:     loc,
		Theme:        c.Theme,
		PostsPerPage: c.PostsPerPage,
	}, nil
}

// formatCUEError keeps the first CUE error and its source position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	field := "config"
	var path []string
	for _, sel := range first.Path() {
		if !strings.HasPrefix(sel, "#") {
			path = append(path, sel)
		}
	}
	if len(path) > 0 {
		field = strings.Join(path, ".")
	}
	msg, args := first.Msg()
	e := &Error{Field: field, Message: fmt.Sprintf(msg, args...)}
	if positions := errors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
