package changelog

import (
	"regexp"
	"strings"
)

// sectionHeaderLine matches a whole semver-shaped header line and captures
// its version token.
var sectionHeaderLine = regexp.MustCompile(`(?m)^# (\d+\.\d+\.\d+\S*).*$`)

// Sections splits document into its semver-shaped version sections, in the
// order they appear. Text before the first such header (title, preamble,
// non-semver headers like "# Unreleased") is not part of any section unless
// it follows a semver header.
func Sections(document string) []Section {
	matches := sectionHeaderLine.FindAllStringSubmatchIndex(document, -1)
	sections := make([]Section, 0, len(matches))

	for i, m := range matches {
		bodyStart := m[1]
		if bodyStart < len(document) {
			bodyStart++ // skip the newline ending the header
		}

		bodyEnd := len(document)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		sections = append(sections, Section{
			Version: document[m[2]:m[3]],
			Header:  strings.TrimRight(document[m[0]:m[1]], "\r"),
			Body:    strings.TrimSpace(document[bodyStart:bodyEnd]),
		})
	}

	return sections
}

// Versions returns the version token of every section in document order.
func Versions(document string) []string {
	sections := Sections(document)
	versions := make([]string, len(sections))
	for i, s := range sections {
		versions[i] = s.Version
	}
	return versions
}
