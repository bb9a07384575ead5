package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURLDeterministic(t *testing.T) {
	first := GravatarURL("jane@example.com")
	second := GravatarURL("jane@example.com")
	assert.Equal(t, first, second)
}

func TestGravatarURLNormalizesCaseAndWhitespace(t *testing.T) {
	base := GravatarURL("jane@example.com")
	assert.Equal(t, base, GravatarURL("JANE@Example.COM"))
	assert.Equal(t, base, GravatarURL("  jane@example.com  "))
}

func TestGravatarURLFormat(t *testing.T) {
	// md5("jane@example.com") precomputed; the query string is fixed.
	assert.Equal(t,
		"https://www.gravatar.com/avatar/9e26471d35a78862c17e467d87cddedf?s=200&r=pg&d=mm",
		GravatarURL("jane@example.com"))
}
