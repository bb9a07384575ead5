package profiles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSkills(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple list", "Go,Rust,SQL", []string{"Go", "Rust", "SQL"}},
		{"whitespace trimmed", " Go , Rust ,  SQL", []string{"Go", "Rust", "SQL"}},
		{"blank entries dropped", "Go,,Rust,", []string{"Go", "Rust"}},
		{"single skill", "Go", []string{"Go"}},
		{"only commas", ",,,", []string{}},
		{"empty input", "", []string{}},
		{"order preserved", "c,b,a", []string{"c", "b", "a"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitSkills(tc.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2019-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("2019-03-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 3, 1, 10, 30, 0, 0, time.UTC), got)

	_, err = parseDate("March 1st 2019")
	assert.Error(t, err)

	_, err = parseDate("")
	assert.Error(t, err)
}

func TestMergeProfileFieldsFromScratch(t *testing.T) {
	merged := mergeProfileFields(nil, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "Go, SQL",
		Company: "Acme",
	})

	assert.Equal(t, "Developer", merged.Status)
	assert.Equal(t, []string{"Go", "SQL"}, merged.Skills)
	require.NotNil(t, merged.Company)
	assert.Equal(t, "Acme", *merged.Company)
	assert.Nil(t, merged.Website)
	assert.Nil(t, merged.Bio)
}

func TestMergeProfileFieldsAccumulatesUnion(t *testing.T) {
	// First submission sets company, second sets bio; the result carries both.
	first := mergeProfileFields(nil, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "Go",
		Company: "Acme",
	})
	second := mergeProfileFields(first, UpsertProfileRequest{
		Status: "Senior Developer",
		Skills: "Go, Rust",
		Bio:    "Ten years of plumbing",
	})

	require.NotNil(t, second.Company)
	assert.Equal(t, "Acme", *second.Company)
	require.NotNil(t, second.Bio)
	assert.Equal(t, "Ten years of plumbing", *second.Bio)
	assert.Equal(t, "Senior Developer", second.Status)
	assert.Equal(t, []string{"Go", "Rust"}, second.Skills)
}

func TestMergeProfileFieldsOverwritesSupplied(t *testing.T) {
	first := mergeProfileFields(nil, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "Go",
		Company: "Acme",
	})
	second := mergeProfileFields(first, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "Go",
		Company: "Globex",
	})

	require.NotNil(t, second.Company)
	assert.Equal(t, "Globex", *second.Company)
}

func TestMergeProfileFieldsDoesNotMutateExisting(t *testing.T) {
	company := "Acme"
	existing := &profileRow{Status: "Developer", Skills: []string{"Go"}, Company: &company}

	mergeProfileFields(existing, UpsertProfileRequest{
		Status:  "Manager",
		Skills:  "People",
		Company: "Globex",
	})

	assert.Equal(t, "Developer", existing.Status)
	assert.Equal(t, "Acme", *existing.Company)
}
