// Package changelog extracts release notes from a Markdown CHANGELOG.md.
//
// This package implements:
//   - Section extraction for a single version (Extract, ReadFile)
//   - Scanning a document into its ordered version sections
//   - Terminal formatting for version listings
//
// A version section starts at a header line of the form "# <version> ..."
// and runs until the next header shaped like a semantic version
// ("# N.N.N") or the end of the document. The requested version is matched
// literally, while the end of its section is always found by shape.
package changelog
