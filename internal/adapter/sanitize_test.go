package adapter

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/wp4bd/internal/record"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Special@#$%Characters", "specialcharacters"},
		{"  --Leading and trailing--  ", "leading-and-trailing"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"Ünïcödé Title", "n-c-d-title"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"!!!", ""},
		{"Version 2.0", "version-2-0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeTitle(tt.in), "input %q", tt.in)
	}
}

var slugPattern = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestSanitizeTitle_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		in := randomString(rng)
		once := SanitizeTitle(in)

		assert.Equal(t, once, SanitizeTitle(once), "idempotent for %q", in)
		assert.Regexp(t, slugPattern, once, "charset for %q", in)
	}
}

// TestSanitizeTitle_SharedAcrossAdapters checks that post slugs, user
// nicenames and term slugs agree for the same input.
func TestSanitizeTitle_SharedAcrossAdapters(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inputs := []string{"Hello World", "Special@#$%Characters", "Ça va? Très bien!"}
	for i := 0; i < 50; i++ {
		inputs = append(inputs, randomString(rng)+" x")
	}

	for _, in := range inputs {
		post := Post(&record.Node{NID: 1, Title: in}, testEnv())
		user := User(&record.Account{UID: 2, Name: "login", DisplayName: in}, testEnv())
		term := Term(&record.Term{TID: 3, Name: in}, testEnv())

		want := SanitizeTitle(in)
		assert.Equal(t, want, post.PostName, "post slug for %q", in)
		assert.Equal(t, want, user.UserNicename, "nicename for %q", in)
		assert.Equal(t, want, term.Slug, "term slug for %q", in)
	}
}

const randomAlphabet = "abcXYZ019 -_@#$%.!é漢\t"

func randomString(rng *rand.Rand) string {
	alphabet := []rune(randomAlphabet)
	n := rng.Intn(16)
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(out)
}
