// Package parse interprets lexed segments as typed branches. Footnote
// references are numbered sequentially in source order; cross-reference
// digits are resolved to the footnote numbers they target.
package parse

import (
	"strconv"

	"github.com/coolbeans/noteref/pkg/lex"
	"github.com/coolbeans/noteref/pkg/types"
)

// Branch is a node of the interpreted document.
//
// Branch contents are slices of the original input string, so the input
// must outlive every branch built from it.
type Branch interface {
	branch()
}

// Text is an opaque chunk reproduced verbatim by the renderer.
type Text struct {
	Contents string
}

// FootnoteRef is a footnote-reference run in document.xml, carrying the
// footnote number it introduces.
type FootnoteRef struct {
	Number   uint32
	Contents string
}

// CrossRef is a reference in footnotes.xml to another footnote. The number
// is the content; there is nothing else to keep.
type CrossRef struct {
	Number uint32
}

func (Text) branch()        {}
func (FootnoteRef) branch() {}
func (CrossRef) branch()    {}

// ReferencedSet is the set of footnote numbers targeted by at least one
// cross-reference. Numbers keep their first-seen order and duplicates
// collapse to one entry.
type ReferencedSet struct {
	order []uint32
	seen  map[uint32]struct{}
}

// NewReferencedSet returns an empty set.
func NewReferencedSet() *ReferencedSet {
	return &ReferencedSet{seen: make(map[uint32]struct{})}
}

// Add records a footnote number. Adding a number already present is a
// no-op.
func (s *ReferencedSet) Add(n uint32) {
	if _, ok := s.seen[n]; ok {
		return
	}
	s.seen[n] = struct{}{}
	s.order = append(s.order, n)
}

// Contains reports whether n was ever added.
func (s *ReferencedSet) Contains(n uint32) bool {
	_, ok := s.seen[n]
	return ok
}

// Numbers returns the distinct numbers in first-seen order.
func (s *ReferencedSet) Numbers() []uint32 {
	out := make([]uint32, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct entries.
func (s *ReferencedSet) Len() int {
	return len(s.order)
}

// Document builds the branch sequence for document.xml. Other segments
// become Text branches verbatim; each FootnoteRef segment becomes a
// FootnoteRef branch numbered 1, 2, 3, … in source order.
//
// This assumes the source numbers its footnotes sequentially from 1 with
// no offset. Documents produced with Supra's numeric-offset feature break
// that precondition.
func Document(input string, segs []lex.Segment) []Branch {
	branches := make([]Branch, 0, len(segs))
	number := uint32(1)

	for _, seg := range segs {
		switch seg.Kind {
		case lex.KindFootnoteRef:
			branches = append(branches, FootnoteRef{
				Number:   number,
				Contents: seg.Text(input),
			})
			number++
		default:
			branches = append(branches, Text{Contents: seg.Text(input)})
		}
	}

	return branches
}

// Footnotes builds the branch sequence for footnotes.xml plus the set of
// footnote numbers that are ever cross-referenced. Other segments become
// Text branches verbatim; CrossRef segments have their digits parsed into
// the targeted footnote number.
//
// Digits that fail to parse as a uint32 yield a *types.ParseError, which
// aborts the whole run.
func Footnotes(input string, segs []lex.Segment) ([]Branch, *ReferencedSet, error) {
	branches := make([]Branch, 0, len(segs))
	referenced := NewReferencedSet()

	for _, seg := range segs {
		switch seg.Kind {
		case lex.KindCrossRef:
			text := seg.Text(input)
			n, err := strconv.ParseUint(text, 10, 32)
			if err != nil {
				return nil, nil, &types.ParseError{
					Field: "cross-reference number",
					Value: text,
					Err:   err,
				}
			}
			referenced.Add(uint32(n))
			branches = append(branches, CrossRef{Number: uint32(n)})
		default:
			branches = append(branches, Text{Contents: seg.Text(input)})
		}
	}

	return branches, referenced, nil
}
