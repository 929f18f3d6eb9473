package wp

// Term is the WP_Term shape.
type Term struct {
	TermID         int64  `json:"term_id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	TermGroup      int    `json:"term_group"`
	TermTaxonomyID int64  `json:"term_taxonomy_id"`
	Taxonomy       string `json:"taxonomy"`
	Description    string `json:"description"`
	Parent         int64  `json:"parent"`
	Count          int    `json:"count"`
	Filter         string `json:"filter"`
}

func (t *Term) Columns() []Column {
	return []Column{
		{"term_id", t.TermID},
		{"name", t.Name},
		{"slug", t.Slug},
		{"term_group", t.TermGroup},
		{"term_taxonomy_id", t.TermTaxonomyID},
		{"taxonomy", t.Taxonomy},
		{"description", t.Description},
		{"parent", t.Parent},
		{"count", t.Count},
		{"filter", t.Filter},
	}
}

func (t *Term) Column(name string) (any, bool) {
	return lookup(t.Columns(), name)
}

// Option is one row of the options table.
type Option struct {
	OptionName  string `json:"option_name"`
	OptionValue any    `json:"option_value"`
	Autoload    string `json:"autoload"`
}

func (o *Option) Columns() []Column {
	return []Column{
		{"option_name", o.OptionName},
		{"option_value", o.OptionValue},
		{"autoload", o.Autoload},
	}
}

func (o *Option) Column(name string) (any, bool) {
	return lookup(o.Columns(), name)
}
