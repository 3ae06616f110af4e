package bookmark

import (
	"errors"
	"testing"

	"github.com/coolbeans/noteref/pkg/pattern"
	"github.com/coolbeans/noteref/pkg/types"
)

func TestStartingID(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		expected uint32
	}{
		{
			name:     "no_bookmarks",
			doc:      `<w:document><w:body><w:p/></w:body></w:document>`,
			expected: 1,
		},
		{
			name:     "empty_document",
			doc:      "",
			expected: 1,
		},
		{
			name:     "single_bookmark",
			doc:      `<w:bookmarkStart w:id="3" w:name="_Toc1"/><w:bookmarkEnd w:id="3"/>`,
			expected: 4,
		},
		{
			name:     "highest_wins",
			doc:      `<w:bookmarkStart w:id="5" w:name="a"/><w:bookmarkStart w:id="9" w:name="b"/>`,
			expected: 10,
		},
		{
			name:     "unordered_ids",
			doc:      `<w:bookmarkStart w:id="12" w:name="a"/><w:bookmarkStart w:id="2" w:name="b"/>`,
			expected: 13,
		},
	}

	pats := pattern.Default()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StartingID(tc.doc, pats)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected starting id %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestStartingIDParseError(t *testing.T) {
	// The default pattern caps ids at nine digits, so overflow needs a
	// custom pattern that admits more.
	pats := &pattern.Set{
		FootnoteReference: `unused`,
		BookmarkStart:     `(<w:bookmarkStart w:id=")([0-9]{1,12})`,
		CrossReference: pattern.CrossReferenceConfig{
			Single: `(>note )([0-9]{1,9})`,
			Range:  `(>notes )([0-9]{1,9})(-|–)([0-9]{1,9})`,
		},
	}
	if err := pats.Compile(); err != nil {
		t.Fatalf("Compiling test patterns: %v", err)
	}

	doc := `<w:bookmarkStart w:id="999999999999" w:name="a"/>`
	_, err := StartingID(doc, pats)
	if err == nil {
		t.Fatal("Expected a parse error, got nil")
	}

	var parseErr *types.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected *types.ParseError, got %T: %v", err, err)
	}
	if parseErr.Value != "999999999999" {
		t.Errorf("Expected offending value 999999999999, got %q", parseErr.Value)
	}
}
