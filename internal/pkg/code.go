package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

const (
	slugSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"
	inviteCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	SlugSuffixLen = 4
	InviteCodeLen = 8
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

func randString(charset string, n int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[x.Int64()])
	}
	return b.String(), nil
}

// Slugify 名称转 URL slug 并追加随机后缀降低碰撞概率
// "Go 爱好者!" -> "go-x3k9" 这类；纯非法字符时只剩后缀
func Slugify(name string) (string, error) {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	suffix, err := randString(slugSuffixChars, SlugSuffixLen)
	if err != nil {
		return "", err
	}
	if s == "" {
		return suffix, nil
	}
	return s + "-" + suffix, nil
}

// RandInviteCode 8位大写字母数字邀请码
func RandInviteCode() (string, error) {
	return randString(inviteCodeChars, InviteCodeLen)
}
