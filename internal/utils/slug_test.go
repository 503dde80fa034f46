package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+-[0-9a-z]{5}$`)

func TestSlugifyNormalizesTitle(t *testing.T) {
	slug := Slugify("The Way of the Neural Network!")
	assert.True(t, strings.HasPrefix(slug, "the-way-of-the-neural-network-"), slug)
	assert.Regexp(t, slugPattern, slug)
}

func TestSlugifyStripsSymbols(t *testing.T) {
	slug := Slugify("C++ & Go: A (biased) comparison?")
	assert.True(t, strings.HasPrefix(slug, "c--go-a-biased-comparison-"), slug)
}

func TestSlugifyEmptyTitleStillProducesSlug(t *testing.T) {
	slug := Slugify("!!!")
	assert.True(t, strings.HasPrefix(slug, "article-"), slug)
}

func TestSlugifySameTitleDiffers(t *testing.T) {
	a := Slugify("My Article")
	b := Slugify("My Article")
	assert.NotEqual(t, a, b)
}
