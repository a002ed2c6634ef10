package pkg

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	slug, err := Slugify("Go Gophers!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "go-gophers-"))
	assert.Len(t, slug, len("go-gophers-")+SlugSuffixLen)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9-]+$`), slug)

	// 全非法字符只剩随机后缀
	slug, err = Slugify("！！！")
	require.NoError(t, err)
	assert.Len(t, slug, SlugSuffixLen)

	first, err := Slugify("same name")
	require.NoError(t, err)
	second, err := Slugify("same name")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRandInviteCode(t *testing.T) {
	code, err := RandInviteCode()
	require.NoError(t, err)
	assert.Len(t, code, InviteCodeLen)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]+$`), code)
}

func TestRandDigits(t *testing.T) {
	digits, err := RandDigits(6)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), digits)
}
