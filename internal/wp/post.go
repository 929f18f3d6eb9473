package wp

// Post is the WP_Post shape.
type Post struct {
	ID                  int64  `json:"ID"`
	PostAuthor          int64  `json:"post_author"`
	PostDate            string `json:"post_date"`
	PostDateGMT         string `json:"post_date_gmt"`
	PostContent         string `json:"post_content"`
	PostTitle           string `json:"post_title"`
	PostExcerpt         string `json:"post_excerpt"`
	PostStatus          string `json:"post_status"`
	CommentStatus       string `json:"comment_status"`
	PingStatus          string `json:"ping_status"`
	PostPassword        string `json:"post_password"`
	PostName            string `json:"post_name"`
	ToPing              string `json:"to_ping"`
	Pinged              string `json:"pinged"`
	PostModified        string `json:"post_modified"`
	PostModifiedGMT     string `json:"post_modified_gmt"`
	PostContentFiltered string `json:"post_content_filtered"`
	PostParent          int64  `json:"post_parent"`
	GUID                string `json:"guid"`
	MenuOrder           int    `json:"menu_order"`
	PostType            string `json:"post_type"`
	PostMimeType        string `json:"post_mime_type"`
	CommentCount        int    `json:"comment_count"`
	Filter              string `json:"filter"`
}

func (p *Post) Columns() []Column {
	return []Column{
		{"ID", p.ID},
		{"post_author", p.PostAuthor},
		{"post_date", p.PostDate},
		{"post_date_gmt", p.PostDateGMT},
		{"post_content", p.PostContent},
		{"post_title", p.PostTitle},
		{"post_excerpt", p.PostExcerpt},
		{"post_status", p.PostStatus},
		{"comment_status", p.CommentStatus},
		{"ping_status", p.PingStatus},
		{"post_password", p.PostPassword},
		{"post_name", p.PostName},
		{"to_ping", p.ToPing},
		{"pinged", p.Pinged},
		{"post_modified", p.PostModified},
		{"post_modified_gmt", p.PostModifiedGMT},
		{"post_content_filtered", p.PostContentFiltered},
		{"post_parent", p.PostParent},
		{"guid", p.GUID},
		{"menu_order", p.MenuOrder},
		{"post_type", p.PostType},
		{"post_mime_type", p.PostMimeType},
		{"comment_count", p.CommentCount},
		{"filter", p.Filter},
	}
}

func (p *Post) Column(name string) (any, bool) {
	return lookup(p.Columns(), name)
}
