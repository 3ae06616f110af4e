// Package types holds the error types shared across the noteref pipeline
// stages. All pipeline errors are terminal: there is no partial-success
// mode, and the caller either receives both rewritten documents or neither.
package types

import "fmt"

// ParseError reports a regex-captured numeric field that failed integer
// parsing. It covers malformed bookmark ids in document.xml and malformed
// cross-reference numbers in footnotes.xml.
type ParseError struct {
	// Field names the captured value, e.g. "bookmark id".
	Field string

	// Value is the offending captured text.
	Value string

	// Err is the underlying strconv error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingReferenceError reports a cross-reference to a footnote number that
// was never bookmarked during document rendering. This only happens when the
// document's footnote numbering does not line up with the references in the
// footnotes document, i.e. the input is internally inconsistent.
type MissingReferenceError struct {
	Number uint32
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("cross-reference to footnote %d has no bookmarked footnote reference", e.Number)
}

// RefWidthError reports a footnote number too large for the fixed-width
// reference id format. Reference ids are "_Ref" followed by the footnote
// number zero-padded to nine digits, so numbers past 999999999 cannot be
// represented without breaking the width every other id carries.
type RefWidthError struct {
	Number uint32
}

func (e *RefWidthError) Error() string {
	return fmt.Sprintf("footnote number %d exceeds the nine-digit reference id width", e.Number)
}
