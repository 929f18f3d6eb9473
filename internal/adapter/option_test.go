package adapter

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mapConfig map[string]map[string]any

func (m mapConfig) Config(_ context.Context, namespace, key string) (any, bool) {
	v, ok := m[namespace][key]
	return v, ok
}

func TestGetOption_Resolvers(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{
		"system.core": {
			"site_name":          "Example Site",
			"site_slogan":        "Just another site",
			"site_mail":          "admin@example.com",
			"default_nodes_main": float64(5),
		},
		"system.date":    {"default_timezone": "Europe/Paris"},
		"wp4bd.settings": {"theme": "twentytwenty"},
	}
	env := Env{BaseURL: "http://example.com", Location: time.UTC}

	tests := []struct {
		name string
		want any
	}{
		{"siteurl", "http://example.com"},
		{"home", "http://example.com"},
		{"blogname", "Example Site"},
		{"blogdescription", "Just another site"},
		{"admin_email", "admin@example.com"},
		{"timezone_string", "Europe/Paris"},
		{"posts_per_page", 5},
		{"template", "twentytwenty"},
		{"stylesheet", "twentytwenty"},
		{"default_comment_status", "open"},
		{"default_ping_status", "closed"},
		{"upload_path", "files"},
		{"blog_charset", "UTF-8"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetOption(ctx, cfg, env, tt.name), tt.name)
	}
}

func TestGetOption_Defaults(t *testing.T) {
	ctx := context.Background()
	env := Env{BaseURL: "http://example.com", Theme: "mytheme"}

	assert.Equal(t, "My Site", GetOption(ctx, mapConfig{}, env, "blogname"))
	assert.Equal(t, "", GetOption(ctx, mapConfig{}, env, "blogdescription"))
	assert.Equal(t, 10, GetOption(ctx, mapConfig{}, env, "posts_per_page"))
	assert.Equal(t, "mytheme", GetOption(ctx, mapConfig{}, env, "template"))
	assert.Equal(t, "UTC", GetOption(ctx, mapConfig{}, env, "timezone_string"))
	assert.Equal(t, float64(0), GetOption(ctx, mapConfig{}, env, "gmt_offset"))
	assert.Equal(t, "My Site", GetOption(ctx, nil, env, "blogname"))
}

func TestGetOption_GenericLookupThenFalse(t *testing.T) {
	ctx := context.Background()
	cfg := mapConfig{OptionNamespace: {"custom_flag": "on"}}

	assert.Equal(t, "on", GetOption(ctx, cfg, Env{}, "custom_flag"))

	missing := GetOption(ctx, cfg, Env{}, "does_not_exist")
	assert.Equal(t, false, missing)
	assert.NotNil(t, missing)

	assert.Equal(t, false, GetOption(ctx, nil, Env{}, "does_not_exist"))
}

func TestKnownOption(t *testing.T) {
	assert.True(t, KnownOption("blogname"))
	assert.False(t, KnownOption("custom_flag"))
}

func TestOptionNames(t *testing.T) {
	names := OptionNames()
	assert.True(t, slices.IsSorted(names))
	assert.Contains(t, names, "siteurl")
	assert.Contains(t, names, "permalink_structure")
	for _, n := range names {
		assert.True(t, KnownOption(n), n)
	}
}
