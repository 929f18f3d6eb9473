package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, &Config{
		BaseURL:      "http://localhost",
		Language:     "und",
		Timezone:     "UTC",
		PostsPerPage: 10,
		TablePrefix:  "wp_",
		Theme:        "twentyseventeen",
		Database:     "wp4bd.db",
	}, c)
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/site.cue")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", c.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "en", c.Language)
	assert.Equal(t, "America/New_York", c.Timezone)
	assert.Equal(t, 5, c.PostsPerPage)
	assert.Equal(t, "wp_", c.TablePrefix, "default kept")
	assert.Equal(t, "twentytwenty", c.Theme)
	assert.Equal(t, "site.db", c.Database)
	assert.Equal(t, "site.yaml", c.Fixture)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"zero page size", `posts_per_page: 0`, "posts_per_page"},
		{"page size type", `posts_per_page: "ten"`, "posts_per_page"},
		{"bad prefix", `table_prefix: "wp-"`, "table_prefix"},
		{"empty theme", `theme: ""`, "theme"},
		{"unknown field", `colour: "red"`, "colour"},
		{"bad time zone", `timezone: "Mars/Olympus"`, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.cue", []byte(tt.src))
			require.Error(t, err)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, cfgErr.Error(), tt.field)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("broken.cue", []byte(`base_url: "unterminated`))
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, cfgErr.Pos.IsValid())
	assert.Contains(t, cfgErr.Error(), "broken.cue")
}

func TestParse_CustomPrefix(t *testing.T) {
	c, err := Parse("test.cue", []byte(`table_prefix: "site2_"`))
	require.NoError(t, err)
	assert.Equal(t, "site2_", c.TablePrefix)
}

func TestEnv(t *testing.T) {
	c, err := Load("testdata/site.cue")
	require.NoError(t, err)

	env, err := c.Env()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", env.BaseURL)
	assert.Equal(t, "en", env.Language)
	assert.Equal(t, "America/New_York", env.Location.String())
	assert.Equal(t, "twentytwenty", env.Theme)
	assert.Equal(t, 5, env.PostsPerPage)
	assert.Equal(t, "https://example.com/node/3", env.URL("node/3"))
}

func TestEnv_BadTimezone(t *testing.T) {
	c := Default()
	c.Timezone = "Nowhere/Special"
	_, err := c.Env()
	assert.Error(t, err)
}
