package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed := HashPassword("corres-horse-battery-staple")

	match, err := CheckPassword("corres-horse-battery-staple", hashed)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CheckPassword("wrong password", hashed)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordStringRoundtrip(t *testing.T) {
	hashed := HashPassword("hello")

	parsed, err := ParsePasswordString(hashed.String())
	require.NoError(t, err)
	assert.Equal(t, hashed.Algorithm, parsed.Algorithm)
	assert.Equal(t, hashed.AlgoConfig, parsed.AlgoConfig)

	match, err := CheckPassword("hello", parsed)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestParsePasswordStringRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "nonsense", "md5#abc#def#ghi"} {
		_, err := ParsePasswordString(s)
		assert.Error(t, err, "should not parse: %s", s)
	}
}
