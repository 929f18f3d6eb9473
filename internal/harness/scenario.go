package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a recorded sequence of theme data-access calls.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the YAML content fixture to seed. LoadScenario resolves
	// it relative to the scenario file.
	Fixture string `yaml:"fixture"`

	// RequestID fixes the facade request ID. Defaults to
	// "test-request-default".
	RequestID string `yaml:"request_id,omitempty"`

	// Env overrides configuration defaults.
	Env *EnvSpec `yaml:"env,omitempty"`

	// Steps are executed in order against one facade.
	Steps []Step `yaml:"steps"`

	// Assertions validate the query log after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// EnvSpec mirrors the configuration keys a scenario may override.
type EnvSpec struct {
	BaseURL      string `yaml:"base_url,omitempty"`
	Language     string `yaml:"language,omitempty"`
	Timezone     string `yaml:"timezone,omitempty"`
	PostsPerPage int    `yaml:"posts_per_page,omitempty"`
	TablePrefix  string `yaml:"table_prefix,omitempty"`
	Theme        string `yaml:"theme,omitempty"`
}

// Step is one call a theme makes.
type Step struct {
	// Call selects the operation; see the package documentation.
	Call string `yaml:"call"`

	// Query is the SQL for facade reads and Query.
	Query string `yaml:"query,omitempty"`

	// Params fill Query placeholders through bridge.Prepare.
	Params []any `yaml:"params,omitempty"`

	// Shape is the output shape for get_results and get_row.
	Shape string `yaml:"shape,omitempty"`

	// Args holds loop arguments as a query string.
	Args string `yaml:"args,omitempty"`

	// Option names the option for option steps.
	Option string `yaml:"option,omitempty"`

	// Table, Data and Where describe insert, update and delete steps.
	Table string         `yaml:"table,omitempty"`
	Data  map[string]any `yaml:"data,omitempty"`
	Where map[string]any `yaml:"where,omitempty"`

	// Expect validates the step result. Nil means no validation.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes a step result. Only the fields that are set are
// checked.
type Expect struct {
	// Count is the number of rows, values or loop posts.
	Count *int `yaml:"count,omitempty"`

	// IDs are the primary identifiers of the rows or posts, in order.
	IDs []int64 `yaml:"ids,omitempty"`

	// Value is the scalar result of get_var, option and write steps.
	Value any `yaml:"value,omitempty"`

	// Null expects get_var or get_row to find nothing.
	Null bool `yaml:"null,omitempty"`

	// Fields is a subset match on the first row or post.
	Fields map[string]any `yaml:"fields,omitempty"`

	// Flags, FoundPosts and MaxNumPages describe loop steps.
	Flags       []string `yaml:"flags,omitempty"`
	FoundPosts  *int     `yaml:"found_posts,omitempty"`
	MaxNumPages *int     `yaml:"max_num_pages,omitempty"`
}

// Assertion validates the query log.
type Assertion struct {
	// Type is one of log_count, log_order, log_contains.
	Type string `yaml:"type"`

	// Method filters log_count and selects the log_contains entry.
	Method string `yaml:"method,omitempty"`

	// Count is the expected number of entries (log_count).
	Count int `yaml:"count,omitempty"`

	// Methods is the expected order (log_order).
	Methods []string `yaml:"methods,omitempty"`

	// Contains is a substring of the entry's query (log_contains).
	Contains string `yaml:"contains,omitempty"`
}

// Step call names.
const (
	CallGetResults = "get_results"
	CallGetRow     = "get_row"
	CallGetVar     = "get_var"
	CallGetCol     = "get_col"
	CallQuery      = "query"
	CallInsert     = "insert"
	CallUpdate     = "update"
	CallDelete     = "delete"
	CallOption     = "option"
	CallLoop       = "loop"
)

// Assertion type constants.
const (
	AssertLogCount    = "log_count"
	AssertLogOrder    = "log_order"
	AssertLogContains = "log_contains"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if s.Fixture != "" && !filepath.IsAbs(s.Fixture) {
		s.Fixture = filepath.Join(filepath.Dir(path), s.Fixture)
	}
	if _, err := os.Stat(s.Fixture); err != nil {
		return nil, fmt.Errorf("invalid scenario: fixture: %w", err)
	}
	return s, nil
}

// ParseScenario parses scenario YAML. The fixture path is not resolved.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	switch st.Call {
	case CallGetResults, CallGetRow, CallGetVar, CallGetCol, CallQuery:
		if st.Query == "" {
			return fmt.Errorf("steps[%d]: query is required for %s", index, st.Call)
		}
	case CallInsert, CallUpdate, CallDelete:
		if st.Table == "" {
			return fmt.Errorf("steps[%d]: table is required for %s", index, st.Call)
		}
	case CallOption:
		if st.Option == "" {
			return fmt.Errorf("steps[%d]: option is required", index)
		}
	case CallLoop:
	case "":
		return fmt.Errorf("steps[%d]: call is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown call %q", index, st.Call)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertLogCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for log_count", index)
		}
	case AssertLogOrder:
		if len(a.Methods) == 0 {
			return fmt.Errorf("assertions[%d]: methods list is required for log_order", index)
		}
	case AssertLogContains:
		if a.Method == "" {
			return fmt.Errorf("assertions[%d]: method is required for log_contains", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
