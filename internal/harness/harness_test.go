package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestRun_ScenarioFiles(t *testing.T) {
	for _, name := range []string{"front_page", "single_post"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(s.Steps))
		})
	}
}

func TestRun_Golden(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/front_page.yaml")
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, s))
}

func TestRun_DetectsMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "expectations that do not hold",
		Fixture:     siteFixture,
		Steps: []Step{
			{Call: CallGetVar, Query: "SELECT COUNT(*) FROM wp_posts WHERE post_type = 'post'", Expect: &Expect{Value: 99}},
			{Call: CallGetResults, Query: "SELECT * FROM wp_posts WHERE post_type = 'post'", Expect: &Expect{IDs: []int64{1, 2, 3}}},
			{Call: CallLoop, Expect: &Expect{FoundPosts: intPtr(1), Flags: []string{"archive"}}},
			{Call: CallGetRow, Query: "SELECT * FROM wp_posts WHERE ID = 1", Expect: &Expect{Null: true}},
		},
		Assertions: []Assertion{{Type: AssertLogCount, Count: 10}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	joined := ""
	for _, e := range result.Errors {
		joined += e + "\n"
	}
	assert.Contains(t, joined, "steps[0] get_var: value = 3, expected 99")
	assert.Contains(t, joined, "steps[1] get_results: ids = [3 2 1], expected [1 2 3]")
	assert.Contains(t, joined, "found_posts = 3, expected 1")
	assert.Contains(t, joined, "flags = [home], expected [archive]")
	assert.Contains(t, joined, "steps[3] get_row: expected no result")
	assert.Contains(t, joined, "Assertion failed: log_count")
}

func TestRun_Env(t *testing.T) {
	s := &Scenario{
		Name:        "env",
		Description: "scenario environment reaches the adapters",
		Fixture:     siteFixture,
		Env:         &EnvSpec{BaseURL: "https://blog.example", TablePrefix: "blog_", PostsPerPage: 1},
		Steps: []Step{
			{Call: CallOption, Option: "siteurl", Expect: &Expect{Value: "https://blog.example"}},
			{Call: CallGetVar, Query: "SELECT guid FROM blog_posts WHERE ID = 2", Expect: &Expect{Value: "https://blog.example/node/2"}},
			{Call: CallLoop, Expect: &Expect{Count: intPtr(1), MaxNumPages: intPtr(3)}},
			{Call: CallDelete, Table: "posts", Where: map[string]any{"ID": 1}, Expect: &Expect{Value: false}},
		},
		Assertions: []Assertion{
			{Type: AssertLogContains, Method: "delete", Contains: "DELETE FROM blog_posts WHERE ID"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_DefaultRequestID(t *testing.T) {
	s := &Scenario{
		Name:        "ids",
		Description: "default request id",
		Fixture:     siteFixture,
		Steps:       []Step{{Call: CallQuery, Query: "TRUNCATE wp_posts", Expect: &Expect{Value: false}}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	require.Len(t, result.Log, 1)
	assert.Equal(t, int64(1), result.Log[0].Seq)
}

func TestRun_Errors(t *testing.T) {
	base := Scenario{Name: "bad", Description: "bad", Fixture: siteFixture}

	missing := base
	missing.Fixture = "testdata/absent.yaml"
	missing.Steps = []Step{{Call: CallLoop}}
	_, err := Run(&missing)
	assert.ErrorContains(t, err, "failed to load fixture")

	badShape := base
	badShape.Steps = []Step{{Call: CallGetResults, Query: "SELECT * FROM wp_posts", Shape: "TABLE"}}
	_, err = Run(&badShape)
	assert.ErrorContains(t, err, "step 0")

	badArgs := base
	badArgs.Steps = []Step{{Call: CallLoop, Args: "paged=%zz"}}
	_, err = Run(&badArgs)
	assert.ErrorContains(t, err, "loop args")

	badEnv := base
	badEnv.Env = &EnvSpec{Timezone: "Nowhere/Special"}
	badEnv.Steps = []Step{{Call: CallLoop}}
	_, err = Run(&badEnv)
	assert.ErrorContains(t, err, "invalid env")
}
