package adapter

import (
	"slices"
	"strings"

	"github.com/roach88/wp4bd/internal/record"
	"github.com/roach88/wp4bd/internal/wp"
)

var vocabularyMap = map[string]string{
	"tags":       "post_tag",
	"categories": "category",
	"category":   "category",
}

// reservedTaxonomies are taxonomy names an unmapped vocabulary must not
// shadow.
var reservedTaxonomies = map[string]bool{
	"post_tag":      true,
	"category":      true,
	"nav_menu":      true,
	"link_category": true,
	"post_format":   true,
}

const taxonomyPrefix = "bd_"

// Taxonomy maps a vocabulary machine name to a taxonomy name.
//
// Unmapped vocabularies keep their name unless it collides with a reserved
// taxonomy, in which case they are prefixed with "bd_".
func Taxonomy(vocabulary string) string {
	if t, ok := vocabularyMap[vocabulary]; ok {
		return t
	}
	if reservedTaxonomies[vocabulary] {
		return taxonomyPrefix + vocabulary
	}
	return vocabulary
}

// Vocabularies returns the vocabulary names that map to taxonomy.
func Vocabularies(taxonomy string) []string {
	var out []string
	for v, t := range vocabularyMap {
		if t == taxonomy {
			out = append(out, v)
		}
	}
	if len(out) > 0 {
		slices.Sort(out)
		return out
	}
	if name, ok := strings.CutPrefix(taxonomy, taxonomyPrefix); ok && reservedTaxonomies[name] {
		return []string{name}
	}
	return []string{taxonomy}
}

// Term adapts a taxonomy term. It returns nil for a nil term or tid 0.
func Term(t *record.Term, env Env) *wp.Term {
	if t == nil || t.TID == 0 {
		return nil
	}

	slug := t.MachineName
	if slug == "" {
		slug = SanitizeTitle(t.Name)
	}
	description, _ := t.Fields.Value("description", env.language(), "value")

	return &wp.Term{
		TermID:         t.TID,
		Name:           t.Name,
		Slug:           slug,
		TermTaxonomyID: t.TID,
		Taxonomy:       Taxonomy(t.Vocabulary),
		Description:    description,
		Parent:         t.Parent,
		Count:          t.Count,
		Filter:         "raw",
	}
}
