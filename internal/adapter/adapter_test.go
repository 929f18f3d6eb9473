package adapter

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

func testEnv() Env {
	return Env{BaseURL: "http://example.com", Location: time.UTC}
}

func assertGolden(t *testing.T, name string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(data, '\n'))
}

func TestPost_Golden(t *testing.T) {
	n := &record.Node{
		NID:          12,
		UID:          3,
		Type:         "article",
		Title:        "Hello World",
		Status:       record.NodePublished,
		Comment:      record.CommentOpen,
		Created:      record.Epoch(1700000000),
		Changed:      record.Epoch(1700003600),
		CommentCount: 4,
		Fields: record.Fields{
			"body": {record.LanguageNone: {{"value": "Body text", "summary": "Short"}}},
		},
	}

	assertGolden(t, "post_published", Post(n, testEnv()))
}

func TestUser_Golden(t *testing.T) {
	a := &record.Account{
		UID:         7,
		Name:        "jdoe",
		Mail:        "jane@example.com",
		DisplayName: "Jane Doe",
		Created:     record.Epoch(1700000000),
		Roles:       []string{"authenticated", "editor"},
	}

	assertGolden(t, "user_editor", User(a, testEnv()))
}

func TestTerm_Golden(t *testing.T) {
	term := &record.Term{
		TID:        5,
		Vocabulary: "categories",
		Name:       "Local News",
		Parent:     2,
		Count:      8,
		Fields: record.Fields{
			"description": {record.LanguageNone: {{"value": "Stories from nearby"}}},
		},
	}

	assertGolden(t, "term_category", Term(term, testEnv()))
}

func TestPost_StatusAndLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	env := Env{BaseURL: "http://example.com", Location: loc}
	const created = int64(1700000000)

	p := Post(&record.Node{NID: 1, Status: 1, Created: record.Epoch(created)}, env)
	require.NotNil(t, p)

	assert.Equal(t, "publish", p.PostStatus)
	assert.Equal(t, time.Unix(created, 0).In(loc).Format(DateLayout), p.PostDate)
	assert.Equal(t, "2023-11-15 00:13:20", p.PostDate)
	assert.Equal(t, "2023-11-14 22:13:20", p.PostDateGMT)
}

func TestPost_Defaults(t *testing.T) {
	p := Post(&record.Node{NID: 2, Status: 0, Title: "Draft"}, testEnv())
	require.NotNil(t, p)

	assert.Equal(t, "draft", p.PostStatus)
	assert.Equal(t, "", p.PostDate)
	assert.Equal(t, "", p.PostDateGMT)
	assert.Equal(t, "", p.PostModified)
	assert.Equal(t, "", p.PostContent)
	assert.Equal(t, "", p.PostExcerpt)
	assert.Equal(t, "closed", p.CommentStatus)
	assert.Equal(t, "closed", p.PingStatus)
}

func TestPost_CommentStatus(t *testing.T) {
	tests := []struct {
		flag int
		want string
	}{
		{record.CommentHidden, "closed"},
		{record.CommentClosed, "closed"},
		{record.CommentOpen, "open"},
		{7, "closed"},
	}
	for _, tt := range tests {
		p := Post(&record.Node{NID: 1, Comment: tt.flag}, testEnv())
		assert.Equal(t, tt.want, p.CommentStatus, "flag %d", tt.flag)
	}
}

func TestPost_SlugPrefersAlias(t *testing.T) {
	withAlias := Post(&record.Node{NID: 1, Title: "Hello World", Path: "/about-us"}, testEnv())
	assert.Equal(t, "about-us", withAlias.PostName)

	fromTitle := Post(&record.Node{NID: 1, Title: "Hello World"}, testEnv())
	assert.Equal(t, "hello-world", fromTitle.PostName)
}

func TestPost_LanguageSelection(t *testing.T) {
	n := &record.Node{
		NID: 1,
		Fields: record.Fields{
			"body": {
				"en":                {{"value": "english"}},
				record.LanguageNone: {{"value": "neutral"}},
			},
		},
	}

	assert.Equal(t, "neutral", Post(n, testEnv()).PostContent)

	env := testEnv()
	env.Language = "en"
	assert.Equal(t, "english", Post(n, env).PostContent)
}

func TestPost_GUID(t *testing.T) {
	n := &record.Node{NID: 9}

	env := Env{BaseURL: "http://example.com/"}
	assert.Equal(t, "http://example.com/node/9", Post(n, env).GUID)

	env.AbsoluteURL = func(path string) string { return "https://cdn.example.com/" + path }
	assert.Equal(t, "https://cdn.example.com/node/9", Post(n, env).GUID)
}

func TestPostType(t *testing.T) {
	assert.Equal(t, "post", PostType("article"))
	assert.Equal(t, "page", PostType("page"))
	assert.Equal(t, "event", PostType("event"))

	assert.Equal(t, []string{"article", "post"}, Bundles("post"))
	assert.Equal(t, []string{"page"}, Bundles("page"))
	assert.Equal(t, []string{"event"}, Bundles("event"))
}

func TestUser_DisplayNameResolution(t *testing.T) {
	explicit := User(&record.Account{UID: 3, Name: "jd", DisplayName: "Jane Q Doe"}, testEnv())
	assert.Equal(t, "Jane Q Doe", explicit.DisplayName)
	assert.Equal(t, "Jane", explicit.FirstName)
	assert.Equal(t, "Q Doe", explicit.LastName)
	assert.Equal(t, "jane-q-doe", explicit.UserNicename)

	fallback := User(&record.Account{UID: 3, Name: "jd"}, testEnv())
	assert.Equal(t, "jd", fallback.DisplayName)
	assert.Equal(t, "", fallback.FirstName)
	assert.Equal(t, "", fallback.LastName)
	assert.Equal(t, "jd", fallback.UserNicename)
}

func TestUser_Roles(t *testing.T) {
	tests := []struct {
		name  string
		uid   int64
		roles []string
		want  string
	}{
		{"superuser without roles", 1, nil, wp.RoleAdministrator},
		{"superuser with editor role", 1, []string{"editor"}, wp.RoleAdministrator},
		{"administrator wins", 2, []string{"author", "administrator", "editor"}, wp.RoleAdministrator},
		{"editor over author", 2, []string{"author", "editor"}, wp.RoleEditor},
		{"author", 2, []string{"authenticated", "author"}, wp.RoleAuthor},
		{"unknown roles", 2, []string{"authenticated"}, wp.RoleSubscriber},
		{"no roles", 2, nil, wp.RoleSubscriber},
		{"case insensitive", 2, []string{"Editor"}, wp.RoleEditor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User(&record.Account{UID: tt.uid, Name: "x", Roles: tt.roles}, testEnv())
			assert.Equal(t, tt.want, u.Role)
		})
	}
}

func TestTerm_SlugAndTaxonomy(t *testing.T) {
	machine := Term(&record.Term{TID: 1, Name: "Big News", MachineName: "big_news", Vocabulary: "tags"}, testEnv())
	assert.Equal(t, "big_news", machine.Slug)
	assert.Equal(t, "post_tag", machine.Taxonomy)

	derived := Term(&record.Term{TID: 1, Name: "Big News", Vocabulary: "custom_vocab"}, testEnv())
	assert.Equal(t, "big-news", derived.Slug)
	assert.Equal(t, "custom_vocab", derived.Taxonomy)
	assert.Equal(t, int64(0), derived.Parent)
}

func TestTaxonomy(t *testing.T) {
	assert.Equal(t, "post_tag", Taxonomy("tags"))
	assert.Equal(t, "category", Taxonomy("categories"))
	assert.Equal(t, "category", Taxonomy("category"))
	assert.Equal(t, "custom_vocab", Taxonomy("custom_vocab"))
	assert.Equal(t, "bd_nav_menu", Taxonomy("nav_menu"))
	assert.Equal(t, "bd_post_tag", Taxonomy("post_tag"))

	assert.Equal(t, []string{"categories", "category"}, Vocabularies("category"))
	assert.Equal(t, []string{"tags"}, Vocabularies("post_tag"))
	assert.Equal(t, []string{"nav_menu"}, Vocabularies("bd_nav_menu"))
	assert.Equal(t, []string{"custom_vocab"}, Vocabularies("custom_vocab"))
}

// TestAdapters_MissingPrimaryKeyReturnsNil fills random fields on records
// whose identifier is zero.
func TestAdapters_MissingPrimaryKeyReturnsNil(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	env := testEnv()

	assert.Nil(t, Post(nil, env))
	assert.Nil(t, User(nil, env))
	assert.Nil(t, Term(nil, env))

	for i := 0; i < 200; i++ {
		n := &record.Node{
			UID:     rng.Int63n(100),
			Type:    randomString(rng),
			Title:   randomString(rng),
			Status:  rng.Intn(2),
			Comment: rng.Intn(3),
			Path:    randomString(rng),
		}
		if rng.Intn(2) == 0 {
			n.Created = record.Epoch(rng.Int63n(2_000_000_000))
		}
		assert.Nil(t, Post(n, env))

		a := &record.Account{
			Name:        randomString(rng),
			Mail:        randomString(rng),
			DisplayName: randomString(rng),
			Roles:       []string{randomString(rng)},
		}
		assert.Nil(t, User(a, env))

		term := &record.Term{
			Vocabulary: randomString(rng),
			Name:       randomString(rng),
			Parent:     rng.Int63n(10),
		}
		assert.Nil(t, Term(term, env))
	}
}
