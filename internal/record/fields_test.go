package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_Value(t *testing.T) {
	f := Fields{
		"body": {
			"en":         {{"value": "english body"}},
			LanguageNone: {{"value": "neutral body", "summary": "neutral summary"}},
		},
	}

	tests := []struct {
		name   string
		field  string
		lang   string
		column string
		want   string
		ok     bool
	}{
		{"exact language", "body", "en", "value", "english body", true},
		{"empty language uses none", "body", "", "value", "neutral body", true},
		{"missing language falls back to none", "body", "fr", "summary", "neutral summary", true},
		{"missing column", "body", "en", "summary", "", false},
		{"missing field", "tags", "en", "value", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.Value(tt.field, tt.lang, tt.column)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_ValueOnNil(t *testing.T) {
	var f Fields
	_, ok := f.Value("body", "", "value")
	assert.False(t, ok)
}

func TestFields_Set(t *testing.T) {
	f := Fields{}
	f.Set("body", "", Item{"value": "x"})
	f.Set("body", "", Item{"value": "y"})

	got, ok := f.Value("body", LanguageNone, "value")
	assert.True(t, ok)
	assert.Equal(t, "y", got)
}

func TestRecord_Keys(t *testing.T) {
	var n *Node
	assert.Equal(t, int64(0), n.Key())
	assert.False(t, n.Published())

	assert.Equal(t, int64(4), (&Node{NID: 4}).Key())
	assert.Equal(t, int64(2), (&Account{UID: 2}).Key())
	assert.Equal(t, int64(9), (&Term{TID: 9}).Key())
	assert.Equal(t, KindConfig, (&Config{Name: "system.core"}).Kind())
}

func TestConfig_Get(t *testing.T) {
	c := &Config{Name: "system.core", Data: map[string]any{"site_name": "Example"}}

	v, ok := c.Get("site_name")
	assert.True(t, ok)
	assert.Equal(t, "Example", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	var nilCfg *Config
	_, ok = nilCfg.Get("site_name")
	assert.False(t, ok)
}

func TestParseNodeSource(t *testing.T) {
	tests := []struct {
		source string
		want   int64
		ok     bool
	}{
		{"node/12", 12, true},
		{"/node/3/", 3, true},
		{"user/1", 0, false},
		{"node/abc", 0, false},
		{"node/0", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, ok := ParseNodeSource(tt.source)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "node/12", NodeSource(12))
}
