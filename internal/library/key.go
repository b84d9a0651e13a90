package library

import (
	"regexp"
	"strings"
)

// keyPattern restricts keys to filename-stem safe characters. Dots are
// excluded so auxiliary variants like CMT12.slides.pdf stay distinguishable
// from the canonical CMT12.pdf.
var keyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+_-]*$`)

// ValidKey reports whether key is a well-formed citation key.
// Keys are case-sensitive; CMT12 and cmt12 are distinct.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// ValidTag reports whether tag is a well-formed tag path: one or more
// /-separated segments, each a plain directory name.
func ValidTag(tag string) bool {
	if tag == "" {
		return false
	}

	for _, segment := range strings.Split(tag, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}

		if strings.ContainsAny(segment, `\:`) {
			return false
		}
	}

	return true
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty items.
func ParseTags(s string) []string {
	var tags []string

	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}
