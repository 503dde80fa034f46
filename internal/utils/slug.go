package utils

import (
	"crypto/rand"
	"regexp"
	"strings"
)

var slugStripRegex = regexp.MustCompile(`[^\w-]+`)

const slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Slugify derives a URL slug from a title: lowercased, spaces to dashes,
// everything else stripped, plus a random 5-character suffix so two articles
// with the same title never collide.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStripRegex.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "article"
	}
	return slug + "-" + randomSuffix(5)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// fixed suffix rather than propagate an error for a slug.
		return strings.Repeat("x", n)
	}
	for i := range buf {
		buf[i] = slugAlphabet[int(buf[i])%len(slugAlphabet)]
	}
	return string(buf)
}
