package adapter

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"
)

// ConfigReader reads configuration values from the target store.
type ConfigReader interface {
	Config(ctx context.Context, namespace, key string) (any, bool)
}

// OptionNamespace holds arbitrary options with no dedicated resolver.
const OptionNamespace = "wp4bd.options"

type optionResolver func(ctx context.Context, r ConfigReader, env Env) any

// optionResolvers answers the options themes read on nearly every request.
var optionResolvers = map[string]optionResolver{
	"siteurl":                func(_ context.Context, _ ConfigReader, env Env) any { return env.BaseURL },
	"home":                   func(_ context.Context, _ ConfigReader, env Env) any { return env.BaseURL },
	"blogname":               configString("system.core", "site_name", "My Site"),
	"blogdescription":        configString("system.core", "site_slogan", ""),
	"admin_email":            configString("system.core", "site_mail", ""),
	"timezone_string":        timezoneString,
	"gmt_offset":             gmtOffset,
	"posts_per_page":         postsPerPage,
	"default_comment_status": configString("node.settings", "default_comment_status", "open"),
	"default_ping_status":    configString("node.settings", "default_ping_status", "closed"),
	"template":               themeName,
	"stylesheet":             themeName,
	"upload_path":            configString("system.core", "file_public_path", "files"),
	"date_format":            configString(OptionNamespace, "date_format", "F j, Y"),
	"time_format":            configString(OptionNamespace, "time_format", "g:i a"),
	"blog_charset":           constant("UTF-8"),
	"show_on_front":          constant("posts"),
	"permalink_structure":    configString(OptionNamespace, "permalink_structure", "/%postname%/"),
}

// GetOption resolves an option by name. Unknown options that are absent
// from the generic option namespace yield false.
func GetOption(ctx context.Context, r ConfigReader, env Env, name string) any {
	if resolve, ok := optionResolvers[name]; ok {
		return resolve(ctx, r, env)
	}
	if r != nil {
		if v, ok := r.Config(ctx, OptionNamespace, name); ok && v != nil {
			return v
		}
	}
	return false
}

// KnownOption reports whether name has a dedicated resolver.
func KnownOption(name string) bool {
	_, ok := optionResolvers[name]
	return ok
}

// OptionNames returns every option with a dedicated resolver, sorted.
func OptionNames() []string {
	return slices.Sorted(maps.Keys(optionResolvers))
}

func constant(v any) optionResolver {
	return func(context.Context, ConfigReader, Env) any { return v }
}

func configString(namespace, key, fallback string) optionResolver {
	return func(ctx context.Context, r ConfigReader, _ Env) any {
		if r == nil {
			return fallback
		}
		v, ok := r.Config(ctx, namespace, key)
		if !ok || v == nil {
			return fallback
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}

func timezoneString(ctx context.Context, r ConfigReader, env Env) any {
	v := configString("system.date", "default_timezone", "")(ctx, r, env).(string)
	if v != "" {
		return v
	}
	return env.location().String()
}

func gmtOffset(ctx context.Context, r ConfigReader, env Env) any {
	loc := env.location()
	if name := timezoneString(ctx, r, env).(string); name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}
	_, offset := time.Now().In(loc).Zone()
	return float64(offset) / 3600
}

func postsPerPage(ctx context.Context, r ConfigReader, env Env) any {
	fallback := env.PostsPerPage
	if fallback <= 0 {
		fallback = 10
	}
	if r == nil {
		return fallback
	}
	v, ok := r.Config(ctx, "system.core", "default_nodes_main")
	if !ok {
		return fallback
	}
	if n, ok := toInt(v); ok && n > 0 {
		return n
	}
	return fallback
}

func themeName(ctx context.Context, r ConfigReader, env Env) any {
	fallback := env.Theme
	if fallback == "" {
		fallback = "twentyseventeen"
	}
	return configString("wp4bd.settings", "theme", fallback)(ctx, r, env)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
