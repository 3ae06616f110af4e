// Package render re-emits the parsed branch sequences as WordprocessingML,
// wrapping cross-referenced footnote references in bookmarks and replacing
// cross-reference numbers with NOTEREF fields bound to those bookmarks.
//
// Word's bookmark markup is a pair of tags around the bookmarked run:
//
//	<w:bookmarkStart w:id="1" w:name="_Ref000000001"/>…<w:bookmarkEnd w:id="1"/>
//
// A cross-reference becomes a fldSimple field pointing at the bookmark
// name. Because the number sits inside a text run, the run is closed
// before the field and reopened after it:
//
//	</w:t></w:r><w:fldSimple w:instr=" NOTEREF _Ref000000001 "><w:r><w:t>1</w:t></w:r></w:fldSimple><w:r><w:t xml:space="preserve">
//
// Word only recognizes the field if this skeleton is reproduced exactly.
package render

import (
	"fmt"
	"strings"

	"github.com/coolbeans/noteref/pkg/parse"
	"github.com/coolbeans/noteref/pkg/types"
)

// Reference ids are "_Ref" plus the footnote number zero-padded to nine
// digits, 13 characters in all. The width is fixed; numbers that do not
// fit are an error, never truncated or widened.
const (
	refIDPrefix = "_Ref"
	refIDDigits = 9

	// MaxFootnoteNumber is the largest footnote number representable in
	// the fixed-width reference id format.
	MaxFootnoteNumber = 999999999
)

// referenceID formats the fixed-width bookmark name for a footnote number.
// The caller checks the width ceiling first.
func referenceID(number uint32) string {
	return fmt.Sprintf("%s%0*d", refIDPrefix, refIDDigits, number)
}

// Document renders the document.xml branch sequence. Text branches are
// emitted verbatim. A footnote reference whose number appears in the
// referenced set is wrapped in a bookmark pair: ids count up from startID
// with no gaps, and each bookmarked number is recorded in the returned
// table as number → reference id. Footnote references nobody points at
// are emitted untouched and consume no id.
//
// A footnote number past MaxFootnoteNumber yields a *types.RefWidthError.
func Document(branches []parse.Branch, referenced *parse.ReferencedSet, startID uint32) (string, map[uint32]string, error) {
	var out strings.Builder
	out.Grow(outputSizeHint(branches))

	refIDs := make(map[uint32]string, referenced.Len())
	id := startID

	for _, branch := range branches {
		switch b := branch.(type) {
		case parse.Text:
			out.WriteString(b.Contents)
		case parse.FootnoteRef:
			if !referenced.Contains(b.Number) {
				out.WriteString(b.Contents)
				continue
			}
			if b.Number > MaxFootnoteNumber {
				return "", nil, &types.RefWidthError{Number: b.Number}
			}

			refID := referenceID(b.Number)
			refIDs[b.Number] = refID

			fmt.Fprintf(&out, `<w:bookmarkStart w:id="%d" w:name="%s"/>`, id, refID)
			out.WriteString(b.Contents)
			fmt.Fprintf(&out, `<w:bookmarkEnd w:id="%d"/>`, id)
			id++
		}
	}

	return out.String(), refIDs, nil
}

// Footnotes renders the footnotes.xml branch sequence. Text branches are
// emitted verbatim; each cross-reference becomes a NOTEREF field bound to
// the reference id recorded for its number during document rendering.
//
// A cross-reference whose number has no entry in refIDs points at a
// footnote that was never bookmarked, which means the document's footnote
// numbering and the footnotes' references disagree. That inconsistency is
// a *types.MissingReferenceError and aborts the run.
func Footnotes(branches []parse.Branch, refIDs map[uint32]string) (string, error) {
	var out strings.Builder
	out.Grow(outputSizeHint(branches))

	for _, branch := range branches {
		switch b := branch.(type) {
		case parse.Text:
			out.WriteString(b.Contents)
		case parse.CrossRef:
			refID, ok := refIDs[b.Number]
			if !ok {
				return "", &types.MissingReferenceError{Number: b.Number}
			}
			fmt.Fprintf(&out,
				`</w:t></w:r><w:fldSimple w:instr=" NOTEREF %s "><w:r><w:t>%d</w:t></w:r></w:fldSimple><w:r><w:t xml:space="preserve">`,
				refID, b.Number)
		}
	}

	return out.String(), nil
}

// outputSizeHint sizes the output builder: the pass-through text plus
// generous headroom per branch for injected markup. One up-front Grow
// keeps realistic documents to a single allocation.
func outputSizeHint(branches []parse.Branch) int {
	n := 0
	for _, branch := range branches {
		switch b := branch.(type) {
		case parse.Text:
			n += len(b.Contents)
		case parse.FootnoteRef:
			n += len(b.Contents) + 96
		case parse.CrossRef:
			n += 160
		}
	}
	return n
}
