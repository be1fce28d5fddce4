package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify lower-cases s and joins words with hyphens. Latin accents are
// stripped; letters of other scripts, such as Bengali titles, are kept along
// with their vowel signs.
func Slugify(s string) string {
	s = norm.NFKD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	dash := false
	afterLatin := true
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Mn, unicode.Mc, unicode.Me):
			if !afterLatin && !dash && b.Len() > 0 {
				b.WriteRune(r)
			}
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash, afterLatin = false, true
		case !unicode.Is(unicode.Latin, r) && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash, afterLatin = false, false
		default:
			afterLatin = true
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return norm.NFC.String(strings.TrimRight(b.String(), "-"))
}

// UniqueSlug returns base, or base-2, base-3, ... for the first candidate
// taken reports as free.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for n := 2; ; n++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
