package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/wp4bd/internal/queryir"
)

// tableKinds maps unprefixed table names to the entity they hold.
var tableKinds = map[string]queryir.EntityKind{
	"posts":              queryir.KindPost,
	"postmeta":           queryir.KindPost,
	"users":              queryir.KindUser,
	"usermeta":           queryir.KindUser,
	"terms":              queryir.KindTerm,
	"term_taxonomy":      queryir.KindTerm,
	"term_relationships": queryir.KindTerm,
	"options":            queryir.KindOption,
	"comments":           queryir.KindComment,
}

// tableSuffixes lists table names longest first so "postmeta" wins over
// "posts" style prefixes of each other.
var tableSuffixes = []string{
	"term_relationships", "term_taxonomy", "postmeta", "usermeta",
	"comments", "options", "posts", "users", "terms",
}

// literal matches a single-quoted SQL string; '' escapes a quote.
const literal = `'((?:[^']|'')*)'`

var (
	reFrom       = regexp.MustCompile("(?i)\\bFROM\\s+`?([A-Za-z0-9_]+)`?")
	reSelectList = regexp.MustCompile(`(?is)^\s*SELECT\s+(.*?)\s+FROM\b`)
	reCount      = regexp.MustCompile(`(?i)\bCOUNT\s*\(\s*(?:\*|[\w.]+)\s*\)`)
	reID         = regexp.MustCompile(`(?i)(?:^|[^\w.]|\w\.)(?:ID|term_id|user_id)\s*=\s*'?(\d+)'?`)
	rePostType   = regexp.MustCompile(`(?i)\bpost_type\s*=\s*` + literal)
	rePostTypeIn = regexp.MustCompile(`(?i)\bpost_type\s+IN\s*\(([^)]*)\)`)
	reTaxonomy   = regexp.MustCompile(`(?i)\btaxonomy\s*=\s*` + literal)
	reStatus     = regexp.MustCompile(`(?i)\bpost_status\s*=\s*` + literal)
	reAuthor     = regexp.MustCompile(`(?i)\bpost_author\s*=\s*'?(\d+)'?`)
	rePostName   = regexp.MustCompile(`(?i)\bpost_name\s*=\s*` + literal)
	reSlug       = regexp.MustCompile(`(?i)\bslug\s*=\s*` + literal)
	reOptionName = regexp.MustCompile(`(?i)\boption_name\s*=\s*` + literal)
	reSearch     = regexp.MustCompile(`(?i)\bpost_title\s+LIKE\s*'%?((?:[^'%]|'')*)%?'`)
	reMetaKey    = regexp.MustCompile(`(?i)\bmeta_key\s*=\s*` + literal)
	reMetaValue  = regexp.MustCompile(`(?i)\bmeta_value\s*=\s*` + literal)
	reOrderBy    = regexp.MustCompile(`(?i)\bORDER\s+BY\s+(?:\w+\.)?` + "`?" + `(\w+)` + "`?" + `(?:\s+(ASC|DESC))?`)
	reLimit      = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)(?:\s*,\s*(\d+)|\s+OFFSET\s+(\d+))?`)
)

// orderColumns maps source column names to descriptor ordering fields.
var orderColumns = map[string]string{
	"post_date":       queryir.OrderCreated,
	"post_date_gmt":   queryir.OrderCreated,
	"user_registered": queryir.OrderCreated,
	"post_modified":   queryir.OrderChanged,
	"post_title":      queryir.OrderTitle,
	"name":            queryir.OrderTitle,
	"user_login":      queryir.OrderTitle,
	"display_name":    queryir.OrderTitle,
	"id":              queryir.OrderID,
	"term_id":         queryir.OrderID,
	"post_author":     queryir.OrderAuthor,
}

// Classify parses a SQL-shaped request into a descriptor. It never fails:
// unrecognized input yields a descriptor with KindUnknown, and unsupported
// predicates are dropped.
func Classify(request string) queryir.Descriptor {
	d := queryir.New(TableKind(request))

	if reCount.MatchString(selectList(request)) {
		d.Aggregate = queryir.AggregateCount
	} else {
		d.Columns = projection(request)
	}

	if m := reID.FindStringSubmatch(request); m != nil {
		d.ID, _ = strconv.ParseInt(m[1], 10, 64)
	}

	switch d.Kind {
	case queryir.KindPost:
		classifyPost(&d, request)
	case queryir.KindTerm:
		if m := reTaxonomy.FindStringSubmatch(request); m != nil {
			d = d.With(queryir.TypeIn{Types: []string{unquote(m[1])}})
		}
		if m := reSlug.FindStringSubmatch(request); m != nil && d.ID == 0 {
			d.Slug = unquote(m[1])
		}
	case queryir.KindOption:
		if m := reOptionName.FindStringSubmatch(request); m != nil {
			d.Name = unquote(m[1])
		}
	}

	if m := reOrderBy.FindStringSubmatch(request); m != nil {
		if field, ok := orderColumns[strings.ToLower(m[1])]; ok {
			d.Order = queryir.Order{Field: field, Desc: strings.EqualFold(m[2], "DESC")}
		}
	}

	if m := reLimit.FindStringSubmatch(request); m != nil {
		first, _ := strconv.Atoi(m[1])
		switch {
		case m[2] != "":
			// MySQL "LIMIT offset, count"
			d.Offset = first
			d.Limit, _ = strconv.Atoi(m[2])
		case m[3] != "":
			d.Limit = first
			d.Offset, _ = strconv.Atoi(m[3])
		default:
			d.Limit = first
		}
	}

	return d
}

func classifyPost(d *queryir.Descriptor, request string) {
	if m := rePostTypeIn.FindStringSubmatch(request); m != nil {
		if types := splitList(m[1]); len(types) > 0 {
			*d = d.With(queryir.TypeIn{Types: types})
		}
	} else if m := rePostType.FindStringSubmatch(request); m != nil {
		*d = d.With(queryir.TypeIn{Types: []string{unquote(m[1])}})
	}

	if m := reStatus.FindStringSubmatch(request); m != nil {
		switch status := strings.ToLower(unquote(m[1])); status {
		case queryir.StatusPublish, queryir.StatusDraft, queryir.StatusAny:
			*d = d.With(queryir.StatusIs{Status: status})
		}
	}

	if m := reAuthor.FindStringSubmatch(request); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		*d = d.With(queryir.AuthorIs{ID: id})
	}

	if m := reSearch.FindStringSubmatch(request); m != nil && m[1] != "" {
		*d = d.With(queryir.Search{Term: unquote(m[1])})
	}

	if k := reMetaKey.FindStringSubmatch(request); k != nil {
		if v := reMetaValue.FindStringSubmatch(request); v != nil {
			*d = d.With(queryir.FieldEquals{Field: unquote(k[1]), Value: unquote(v[1])})
		}
	}

	if m := rePostName.FindStringSubmatch(request); m != nil && d.ID == 0 {
		d.Slug = unquote(m[1])
	}
}

// TableKind returns the entity held by the first table named after FROM.
// Any table prefix is accepted.
func TableKind(request string) queryir.EntityKind {
	m := reFrom.FindStringSubmatch(request)
	if m == nil {
		return queryir.KindUnknown
	}
	return kindOfTable(m[1])
}

func kindOfTable(name string) queryir.EntityKind {
	name = strings.ToLower(name)
	for _, suffix := range tableSuffixes {
		if strings.HasSuffix(name, suffix) {
			return tableKinds[suffix]
		}
	}
	return queryir.KindUnknown
}

func selectList(request string) string {
	m := reSelectList.FindStringSubmatch(request)
	if m == nil {
		return ""
	}
	return m[1]
}

// projection returns the plain column list of a SELECT, or nil for "*"
// and for anything containing an expression.
func projection(request string) []string {
	list := strings.TrimSpace(selectList(request))
	if list == "" || strings.ContainsAny(list, "()*") {
		return nil
	}
	if strings.HasPrefix(strings.ToUpper(list), "DISTINCT ") {
		list = strings.TrimSpace(list[len("DISTINCT "):])
	}

	var cols []string
	for _, part := range strings.Split(list, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		col := strings.Trim(fields[0], "`")
		if i := strings.LastIndexByte(col, '.'); i >= 0 {
			col = strings.Trim(col[i+1:], "`")
		}
		if col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		v := unquote(strings.Trim(strings.TrimSpace(part), `'"`))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// unquote undoes SQL quote doubling inside a matched literal.
func unquote(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}
