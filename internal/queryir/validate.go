package queryir

import "fmt"

// ValidationResult lists inconsistencies found in a descriptor.
//
// Warnings never stop execution. The executor logs them and carries on,
// so a malformed descriptor degrades to a broader or empty result rather
// than a failure.
type ValidationResult struct {
	Valid    bool
	Warnings []string
}

// Validate checks a descriptor for contradictory settings.
//
// Rules:
//  1. NoLimit requires Limit == 0
//  2. Limit, Offset and Page must not be negative
//  3. ID and Slug are mutually exclusive
//  4. Aggregates ignore projection and output shape
//  5. Predicate payloads must be non-empty
//
// Validate is a pure function with no side effects.
func Validate(d Descriptor) ValidationResult {
	v := &validator{warnings: []string{}}
	v.validateRange(d)
	v.validateSelector(d)
	for _, p := range d.Predicates {
		v.validatePredicate(p)
	}
	if d.Aggregate == AggregateCount && len(d.Columns) > 0 {
		v.addWarning("COUNT aggregate ignores projected columns %v", d.Columns)
	}

	return ValidationResult{
		Valid:    len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateRange(d Descriptor) {
	if d.NoLimit && d.Limit != 0 {
		v.addWarning("NoLimit set together with Limit %d", d.Limit)
	}
	if d.Limit < 0 {
		v.addWarning("negative limit %d", d.Limit)
	}
	if d.Offset < 0 {
		v.addWarning("negative offset %d", d.Offset)
	}
	if d.Page < 0 {
		v.addWarning("negative page %d", d.Page)
	}
}

func (v *validator) validateSelector(d Descriptor) {
	if d.ID > 0 && d.Slug != "" {
		v.addWarning("both ID %d and slug %q set; ID wins", d.ID, d.Slug)
	}
	if d.ID < 0 {
		v.addWarning("negative ID %d", d.ID)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case TypeIn:
		if len(pred.Types) == 0 {
			v.addWarning("type predicate without types")
		}
	case StatusIs:
		switch pred.Status {
		case StatusPublish, StatusDraft, StatusAny:
		default:
			v.addWarning("unknown status %q", pred.Status)
		}
	case AuthorIs:
		if pred.ID == 0 && pred.Name == "" {
			v.addWarning("author predicate without ID or name")
		}
	case Search:
		if pred.Term == "" {
			v.addWarning("empty search term")
		}
	case FieldEquals:
		if pred.Field == "" {
			v.addWarning("field predicate without field name")
		}
	case nil:
		v.addWarning("nil predicate")
	default:
		v.addWarning("unknown predicate type: %T", p)
	}
}
