package adapter

import (
	"strings"
	"time"

	"github.com/roach88/wp4bd/internal/record"
)

// DateLayout is the timestamp format of post_date and friends.
const DateLayout = "2006-01-02 15:04:05"

// Env carries the site-wide values adapters depend on.
type Env struct {
	// BaseURL is the absolute site URL without a trailing slash.
	BaseURL string

	// Language selects field values. Empty means record.LanguageNone.
	Language string

	// Location is the site timezone for local timestamps. Nil means UTC.
	Location *time.Location

	// Theme is the active theme identifier.
	Theme string

	// PostsPerPage is the fallback page size.
	PostsPerPage int

	// AbsoluteURL builds an absolute URL for an internal path such as
	// "node/12". Optional.
	AbsoluteURL func(path string) string
}

func (e Env) language() string {
	if e.Language == "" {
		return record.LanguageNone
	}
	return e.Language
}

func (e Env) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

// URL returns the absolute URL of an internal path.
func (e Env) URL(path string) string {
	if e.AbsoluteURL != nil {
		return e.AbsoluteURL(path)
	}
	return strings.TrimRight(e.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// formatLocal renders an optional epoch in the site timezone.
func (e Env) formatLocal(epoch *int64) string {
	if epoch == nil {
		return ""
	}
	return time.Unix(*epoch, 0).In(e.location()).Format(DateLayout)
}

// formatUTC renders an optional epoch in UTC.
func formatUTC(epoch *int64) string {
	if epoch == nil {
		return ""
	}
	return time.Unix(*epoch, 0).UTC().Format(DateLayout)
}
