package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"jane@x.com",
		"name@example.com",
		"first.last@sub.domain.co",
		"user-name@host.io",
	}
	for _, email := range valid {
		assert.True(t, validEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"no-at.com",
		"name@nodot",
		"spaces in@mail.com",
	}
	for _, email := range invalid {
		assert.False(t, validEmail(email), email)
	}
}

func TestParseUSD(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1500", 1500, true},
		{"$999.50", 999.50, true},
		{"USD 1,200", 1200, true},
		{"0", 0, true},
		{"", 0, false},
		{"a lot", 0, false},
		{"1.2.3", 0, false},
		{"..", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseUSD(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.input)
		}
	}
}

func TestIsSkip(t *testing.T) {
	assert.True(t, isSkip("skip"))
	assert.True(t, isSkip("SKIP"))
	assert.True(t, isSkip("Skip"))
	assert.False(t, isSkip("skipp"))
	assert.False(t, isSkip(""))
}

func TestParseYesNo(t *testing.T) {
	yes, ok := parseYesNo("Yes")
	assert.True(t, yes)
	assert.True(t, ok)

	yes, ok = parseYesNo("NO")
	assert.False(t, yes)
	assert.True(t, ok)

	_, ok = parseYesNo("yep")
	assert.False(t, ok)
}

func TestValidName(t *testing.T) {
	assert.True(t, validName("Jan"))
	assert.True(t, validName("Jane Doe"))
	assert.False(t, validName("ab"))
	assert.False(t, validName(""))
}
