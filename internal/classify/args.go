package classify

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/roach88/wp4bd/internal/queryir"
)

// Args is a WP_Query-style argument set.
type Args struct {
	P          int64    `json:"p,omitempty"`
	PageID     int64    `json:"page_id,omitempty"`
	Name       string   `json:"name,omitempty"`
	PageName   string   `json:"pagename,omitempty"`
	PostType   []string `json:"post_type,omitempty"`
	PostStatus string   `json:"post_status,omitempty"`
	Author     int64    `json:"author,omitempty"`
	AuthorName string   `json:"author_name,omitempty"`
	S          string   `json:"s,omitempty"`
	MetaKey    string   `json:"meta_key,omitempty"`
	MetaValue  string   `json:"meta_value,omitempty"`
	OrderBy    string   `json:"orderby,omitempty"`
	Order      string   `json:"order,omitempty"`

	// PostsPerPage is the page size. Zero means the site default; -1
	// means every matching post.
	PostsPerPage int  `json:"posts_per_page,omitempty"`
	NoPaging     bool `json:"nopaging,omitempty"`
	Paged        int  `json:"paged,omitempty"`
	Offset       int  `json:"offset,omitempty"`
}

// Mode is how a loop resolves its posts.
type Mode int

const (
	// ModeMulti runs a filtered query.
	ModeMulti Mode = iota
	// ModeID loads one post by identifier.
	ModeID
	// ModePage loads one page by identifier.
	ModePage
	// ModeSlug loads one post or page by slug.
	ModeSlug
)

func (m Mode) String() string {
	switch m {
	case ModeID:
		return "id"
	case ModePage:
		return "page"
	case ModeSlug:
		return "slug"
	default:
		return "multi"
	}
}

// Mode returns the resolution mode, checked in order: p, page_id, name or
// pagename, otherwise multi.
func (a Args) Mode() Mode {
	switch {
	case a.P > 0:
		return ModeID
	case a.PageID > 0:
		return ModePage
	case a.Name != "" || a.PageName != "":
		return ModeSlug
	default:
		return ModeMulti
	}
}

// IsPageRequest reports whether a single-record request targets a page.
func (a Args) IsPageRequest() bool {
	return a.P == 0 && (a.PageID > 0 || (a.Name == "" && a.PageName != ""))
}

var orderByArgs = map[string]string{
	"date":     queryir.OrderCreated,
	"modified": queryir.OrderChanged,
	"title":    queryir.OrderTitle,
	"id":       queryir.OrderID,
	"author":   queryir.OrderAuthor,
}

// FromArgs maps a WP_Query-style argument set to a descriptor.
func FromArgs(a Args) queryir.Descriptor {
	d := queryir.New(queryir.KindPost)

	switch a.Mode() {
	case ModeID:
		d.ID = a.P
		return d
	case ModePage:
		d.ID = a.PageID
		return d.With(queryir.TypeIn{Types: []string{"page"}})
	case ModeSlug:
		if a.Name != "" {
			d.Slug = a.Name
			return d
		}
		d.Slug = a.PageName
		return d.With(queryir.TypeIn{Types: []string{"page"}})
	}

	switch {
	case len(a.PostType) == 1 && a.PostType[0] == "any":
	case len(a.PostType) > 0:
		d = d.With(queryir.TypeIn{Types: a.PostType})
	default:
		d = d.With(queryir.TypeIn{Types: []string{"post"}})
	}

	status := strings.ToLower(a.PostStatus)
	if status == "" {
		status = queryir.StatusPublish
	}
	d = d.With(queryir.StatusIs{Status: status})

	if a.Author > 0 || a.AuthorName != "" {
		d = d.With(queryir.AuthorIs{ID: a.Author, Name: a.AuthorName})
	}
	if a.S != "" {
		d = d.With(queryir.Search{Term: a.S})
	}
	if a.MetaKey != "" {
		d = d.With(queryir.FieldEquals{Field: a.MetaKey, Value: a.MetaValue})
	}

	if field, ok := orderByArgs[strings.ToLower(a.OrderBy)]; ok {
		d.Order.Field = field
	}
	if strings.EqualFold(a.Order, "ASC") {
		d.Order.Desc = false
	}

	switch {
	case a.NoPaging || a.PostsPerPage < 0:
		d.NoLimit = true
	case a.PostsPerPage > 0:
		d.Limit = a.PostsPerPage
	}
	d.Page = a.Paged
	d.Offset = a.Offset

	return d
}

// ParseArgs reads a query string such as
// "post_type=page&posts_per_page=5&paged=2". post_type may repeat or be
// comma separated. Unknown keys are ignored.
func ParseArgs(query string) (Args, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return Args{}, fmt.Errorf("parse args: %w", err)
	}

	var a Args
	var errs []string
	intArg := func(key string, dst *int) {
		if v := values.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q is not an integer", key, v))
				return
			}
			*dst = n
		}
	}
	idArg := func(key string, dst *int64) {
		if v := values.Get(key); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q is not an integer", key, v))
				return
			}
			*dst = n
		}
	}

	idArg("p", &a.P)
	idArg("page_id", &a.PageID)
	idArg("author", &a.Author)
	intArg("posts_per_page", &a.PostsPerPage)
	intArg("paged", &a.Paged)
	intArg("offset", &a.Offset)

	a.Name = values.Get("name")
	a.PageName = values.Get("pagename")
	a.PostStatus = values.Get("post_status")
	a.AuthorName = values.Get("author_name")
	a.S = values.Get("s")
	a.MetaKey = values.Get("meta_key")
	a.MetaValue = values.Get("meta_value")
	a.OrderBy = values.Get("orderby")
	a.Order = values.Get("order")

	for _, v := range values["post_type"] {
		a.PostType = append(a.PostType, splitList(v)...)
	}
	if v := values.Get("nopaging"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("nopaging=%q is not a boolean", v))
		}
		a.NoPaging = b
	}

	if len(errs) > 0 {
		return Args{}, fmt.Errorf("parse args: %s", strings.Join(errs, "; "))
	}
	return a, nil
}
