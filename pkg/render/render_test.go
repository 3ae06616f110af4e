package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/coolbeans/noteref/pkg/parse"
	"github.com/coolbeans/noteref/pkg/types"
)

const footnoteRun = `<w:r><w:rPr><w:rStyle w:val="FootnoteReference" /></w:rPr><w:footnoteReference w:id="1" /></w:r>`

func referencedSet(numbers ...uint32) *parse.ReferencedSet {
	s := parse.NewReferencedSet()
	for _, n := range numbers {
		s.Add(n)
	}
	return s
}

func TestReferenceIDFormat(t *testing.T) {
	cases := []struct {
		number   uint32
		expected string
	}{
		{number: 1, expected: "_Ref000000001"},
		{number: 42, expected: "_Ref000000042"},
		{number: 999999999, expected: "_Ref999999999"},
	}

	for _, tc := range cases {
		got := referenceID(tc.number)
		if got != tc.expected {
			t.Errorf("referenceID(%d) = %q, want %q", tc.number, got, tc.expected)
		}
		if len(got) != 13 {
			t.Errorf("referenceID(%d) is %d characters, want 13", tc.number, len(got))
		}
	}
}

func TestDocumentBookmarksReferencedFootnote(t *testing.T) {
	branches := []parse.Branch{
		parse.Text{Contents: `<w:p>before</w:p>`},
		parse.FootnoteRef{Number: 1, Contents: footnoteRun},
		parse.Text{Contents: `<w:p>after</w:p>`},
	}

	out, refIDs, err := Document(branches, referencedSet(1), 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `<w:p>before</w:p>` +
		`<w:bookmarkStart w:id="7" w:name="_Ref000000001"/>` +
		footnoteRun +
		`<w:bookmarkEnd w:id="7"/>` +
		`<w:p>after</w:p>`
	if out != expected {
		t.Errorf("Rendered document:\nwant %q\ngot  %q", expected, out)
	}

	if len(refIDs) != 1 || refIDs[1] != "_Ref000000001" {
		t.Errorf("Expected table {1: _Ref000000001}, got %v", refIDs)
	}
}

func TestDocumentSkipsUnreferencedFootnote(t *testing.T) {
	branches := []parse.Branch{
		parse.FootnoteRef{Number: 1, Contents: footnoteRun},
		parse.Text{Contents: "middle"},
		parse.FootnoteRef{Number: 2, Contents: footnoteRun},
	}

	// Only footnote 2 is referenced. Footnote 1 must be emitted untouched
	// and must not consume a bookmark id.
	out, refIDs, err := Document(branches, referencedSet(2), 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := footnoteRun + "middle" +
		`<w:bookmarkStart w:id="10" w:name="_Ref000000002"/>` +
		footnoteRun +
		`<w:bookmarkEnd w:id="10"/>`
	if out != expected {
		t.Errorf("Rendered document:\nwant %q\ngot  %q", expected, out)
	}
	if len(refIDs) != 1 {
		t.Errorf("Expected one table entry, got %v", refIDs)
	}
}

func TestDocumentBookmarkIDsIncrease(t *testing.T) {
	var branches []parse.Branch
	for i := uint32(1); i <= 4; i++ {
		branches = append(branches, parse.FootnoteRef{Number: i, Contents: footnoteRun})
	}

	out, refIDs, err := Document(branches, referencedSet(1, 2, 3, 4), 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(refIDs) != 4 {
		t.Fatalf("Expected 4 table entries, got %d", len(refIDs))
	}

	// Ids 5 through 8, in order, no gaps.
	for _, id := range []string{`w:id="5"`, `w:id="6"`, `w:id="7"`, `w:id="8"`} {
		if !strings.Contains(out, `<w:bookmarkStart `+id) {
			t.Errorf("Missing bookmark id %s", id)
		}
	}
	if strings.Contains(out, `w:id="9"`) {
		t.Errorf("Bookmark id 9 should not be assigned")
	}
}

func TestDocumentNoOpWithEmptyReferencedSet(t *testing.T) {
	branches := []parse.Branch{
		parse.Text{Contents: `<w:p>text</w:p>`},
		parse.FootnoteRef{Number: 1, Contents: footnoteRun},
		parse.Text{Contents: `</w:body>`},
	}

	out, refIDs, err := Document(branches, parse.NewReferencedSet(), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `<w:p>text</w:p>` + footnoteRun + `</w:body>`
	if out != expected {
		t.Errorf("Document changed with nothing referenced:\nwant %q\ngot  %q", expected, out)
	}
	if len(refIDs) != 0 {
		t.Errorf("Expected empty table, got %v", refIDs)
	}
}

func TestDocumentRefWidthError(t *testing.T) {
	branches := []parse.Branch{
		parse.FootnoteRef{Number: 1000000000, Contents: footnoteRun},
	}

	_, _, err := Document(branches, referencedSet(1000000000), 1)
	if err == nil {
		t.Fatal("Expected a width error, got nil")
	}

	var widthErr *types.RefWidthError
	if !errors.As(err, &widthErr) {
		t.Fatalf("Expected *types.RefWidthError, got %T: %v", err, err)
	}
	if widthErr.Number != 1000000000 {
		t.Errorf("Expected offending number 1000000000, got %d", widthErr.Number)
	}
}

func TestFootnotesInjectsField(t *testing.T) {
	branches := []parse.Branch{
		parse.Text{Contents: `<w:t xml:space="preserve">note `},
		parse.CrossRef{Number: 1},
		parse.Text{Contents: `.</w:t>`},
	}

	out, err := Footnotes(branches, map[uint32]string{1: "_Ref000000001"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `<w:t xml:space="preserve">note ` +
		`</w:t></w:r><w:fldSimple w:instr=" NOTEREF _Ref000000001 "><w:r><w:t>1</w:t></w:r></w:fldSimple><w:r><w:t xml:space="preserve">` +
		`.</w:t>`
	if out != expected {
		t.Errorf("Rendered footnotes:\nwant %q\ngot  %q", expected, out)
	}
}

func TestFootnotesMissingReference(t *testing.T) {
	branches := []parse.Branch{
		parse.CrossRef{Number: 9},
	}

	_, err := Footnotes(branches, map[uint32]string{1: "_Ref000000001"})
	if err == nil {
		t.Fatal("Expected a missing-reference error, got nil")
	}

	var missingErr *types.MissingReferenceError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Expected *types.MissingReferenceError, got %T: %v", err, err)
	}
	if missingErr.Number != 9 {
		t.Errorf("Expected offending number 9, got %d", missingErr.Number)
	}
}

func TestFootnotesTextOnly(t *testing.T) {
	branches := []parse.Branch{
		parse.Text{Contents: `<w:footnotes>plain</w:footnotes>`},
	}

	out, err := Footnotes(branches, map[uint32]string{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != `<w:footnotes>plain</w:footnotes>` {
		t.Errorf("Text-only footnotes changed: %q", out)
	}
}
