package changelog

// Section represents one version section of a changelog document.
// Sections are produced by Sections and appear in document order.
type Section struct {
	// Version is the semver-shaped token following the marker (e.g., "1.2.3"
	// or "1.2.3-rc.1").
	Version string
	// Header is the complete header line without its trailing newline.
	Header string
	// Body is the section content with the header removed and surrounding
	// whitespace trimmed.
	Body string
}

// String renders the section back into changelog form: the header line,
// a blank line and the body. Empty bodies render as the header alone.
func (s Section) String() string {
	if s.Body == "" {
		return s.Header
	}
	return s.Header + "\n\n" + s.Body
}

