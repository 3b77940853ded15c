package changelog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Marker is the prefix of every version header line.
const Marker = "# "

// sectionHeader matches the start of a line that opens a semver-shaped
// section. It is used to find where a section ends.
var sectionHeader = regexp.MustCompile(`(?m)^# \d+\.\d+\.\d+`)

// Extract returns the body of the section whose header carries version.
//
// The header is the first line starting with "# " followed by version taken
// literally. When version ends in a word character the header token must
// end there too, so "1.0" does not select "# 1.0.0". The body runs from the
// line after the header to the next "# N.N.N" line or the end of document,
// and is returned with surrounding whitespace trimmed.
//
// An empty string means the version was not found.
func Extract(version, document string) string {
	if version == "" || document == "" {
		return ""
	}

	loc := headerPattern(version).FindStringIndex(document)
	if loc == nil {
		return ""
	}

	rest := document[loc[1]:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		// Header is the last line, nothing follows it
		return ""
	}
	rest = rest[nl+1:]

	if next := sectionHeader.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}

	return strings.TrimSpace(rest)
}

// ReadFile reads a whole changelog document into memory.
// Read failures are returned with the path for context.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return string(data), nil
}

// headerPattern builds the multiline pattern for the header of version.
func headerPattern(version string) *regexp.Regexp {
	pattern := `(?m)^` + regexp.QuoteMeta(Marker+version)
	if endsInWordChar(version) {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

// endsInWordChar reports whether the last byte of s is an ASCII word
// character, matching the definition used by \b.
func endsInWordChar(s string) bool {
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
