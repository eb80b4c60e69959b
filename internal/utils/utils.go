package utils

import (
	"crypto/md5"
	"fmt"
	"regexp"
	"strings"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// DocumentID derives the stable store identifier for an article URL.
// Same URL in, same id out, across runs.
func DocumentID(articleURL string) string {
	hash := md5.Sum([]byte(articleURL))
	return fmt.Sprintf("%x", hash)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func NormalizeWhitespace(text string) string {
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
