// Package config loads bridge settings from a CUE file.
//
// The file is unified with an embedded schema that supplies defaults and
// rejects unknown fields, so a missing or empty file yields a usable
// configuration:
//
//	base_url:       "https://example.com"
//	posts_per_page: 5
//	timezone:       "Europe/Berlin"
package config
