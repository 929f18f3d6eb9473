package adapter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

// typeMap maps node bundles to post types. Unlisted bundles keep their name.
var typeMap = map[string]string{
	"article": "post",
	"post":    "post",
	"page":    "page",
}

// PostType returns the post type for a node bundle.
func PostType(bundle string) string {
	if t, ok := typeMap[bundle]; ok {
		return t
	}
	return bundle
}

// Bundles returns the node bundles that map to postType.
func Bundles(postType string) []string {
	var out []string
	for bundle, t := range typeMap {
		if t == postType && bundle != postType {
			out = append(out, bundle)
		}
	}
	slices.Sort(out)
	return append(out, postType)
}

// Post adapts a node. It returns nil for a nil node or a node without nid.
func Post(n *record.Node, env Env) *wp.Post {
	if n == nil || n.NID == 0 {
		return nil
	}

	lang := env.language()
	body, _ := n.Fields.Value("body", lang, "value")
	summary, _ := n.Fields.Value("body", lang, "summary")

	status := "draft"
	if n.Status == record.NodePublished {
		status = "publish"
	}

	commentStatus := "closed"
	if n.Comment == record.CommentOpen {
		commentStatus = "open"
	}

	id := strconv.FormatInt(n.NID, 10)

	return &wp.Post{
		ID:              n.NID,
		PostAuthor:      n.UID,
		PostDate:        env.formatLocal(n.Created),
		PostDateGMT:     formatUTC(n.Created),
		PostContent:     body,
		PostTitle:       n.Title,
		PostExcerpt:     summary,
		PostStatus:      status,
		CommentStatus:   commentStatus,
		PingStatus:      "closed",
		PostName:        postSlug(n),
		PostModified:    env.formatLocal(n.Changed),
		PostModifiedGMT: formatUTC(n.Changed),
		GUID:            env.URL("node/" + id),
		PostType:        PostType(n.Type),
		CommentCount:    n.CommentCount,
		Filter:          "raw",
	}
}

// postSlug prefers the explicit alias and otherwise derives one from the
// title.
func postSlug(n *record.Node) string {
	if alias := strings.Trim(n.Path, "/"); alias != "" {
		return alias
	}
	return SanitizeTitle(n.Title)
}
