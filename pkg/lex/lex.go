// Package lex splits the document.xml and footnotes.xml payloads into
// ordered segments. Markup is treated as opaque text: the lexer only
// recognizes the few patterns that matter for cross-referencing and leaves
// every other byte untouched.
//
// For any input, concatenating the segment texts in order reproduces the
// input exactly. Consumers rely on that round-trip law to rewrite one part
// of a document without disturbing the rest.
package lex

import (
	"github.com/coolbeans/noteref/pkg/pattern"
)

// Kind classifies a segment.
type Kind int

const (
	// KindOther is everything the lexer does not recognize.
	KindOther Kind = iota

	// KindFootnoteRef is a footnote-reference run in document.xml.
	KindFootnoteRef

	// KindCrossRef is the digits of a cross-reference in footnotes.xml.
	KindCrossRef
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "Other"
	case KindFootnoteRef:
		return "FootnoteRef"
	case KindCrossRef:
		return "CrossRef"
	default:
		return "Unknown"
	}
}

// Segment is a typed, contiguous [Start, End) byte span of the input.
// Segments never own text; Text slices the original input on demand.
type Segment struct {
	Kind  Kind
	Start int
	End   int
}

// Text returns the segment's slice of input. The input must be the same
// string the segment was lexed from.
func (s Segment) Text(input string) string {
	return input[s.Start:s.End]
}

// Document lexes the document.xml payload into alternating Other and
// FootnoteRef segments. The sequence always begins and ends with an Other
// segment, either of which may be empty. An input with no footnote
// references yields a single Other segment covering the whole input.
func Document(input string, pats *pattern.Set) []Segment {
	matches := pats.FootnoteReferenceRE().FindAllStringIndex(input, -1)

	segs := make([]Segment, 0, 2*len(matches)+1)
	start := 0
	for _, m := range matches {
		// Close off the Other chunk running up to this match, then take
		// the whole match as one FootnoteRef chunk.
		segs = append(segs, Segment{Kind: KindOther, Start: start, End: m[0]})
		segs = append(segs, Segment{Kind: KindFootnoteRef, Start: m[0], End: m[1]})
		start = m[1]
	}
	segs = append(segs, Segment{Kind: KindOther, Start: start, End: len(input)})

	return segs
}

// Footnotes lexes the footnotes.xml payload into Other and CrossRef
// segments. A single reference ("note 3") contributes one CrossRef segment
// holding just the digits; a ranged reference ("notes 1–2") contributes
// two CrossRef segments with the dash glyph between them kept verbatim as
// an Other segment, so either a hyphen or an en-dash survives the
// round trip. The marker text itself is folded into the preceding Other
// segment.
//
// Ranged matches win over single matches at the same position. With the
// default patterns the two cannot collide, but a custom set may overlap.
func Footnotes(input string, pats *pattern.Set) []Segment {
	rangeMatches := pats.RangeRE().FindAllStringSubmatchIndex(input, -1)
	singleMatches := pats.SingleRE().FindAllStringSubmatchIndex(input, -1)

	var segs []Segment
	start := 0

	ri, si := 0, 0
	for ri < len(rangeMatches) || si < len(singleMatches) {
		// Drop matches swallowed by an earlier one.
		for ri < len(rangeMatches) && rangeMatches[ri][0] < start {
			ri++
		}
		for si < len(singleMatches) && singleMatches[si][0] < start {
			si++
		}
		if ri >= len(rangeMatches) && si >= len(singleMatches) {
			break
		}

		// Pick the earliest remaining match, preferring the ranged form
		// on a tie.
		useRange := si >= len(singleMatches) ||
			(ri < len(rangeMatches) && rangeMatches[ri][0] <= singleMatches[si][0])

		if useRange {
			m := rangeMatches[ri]
			ri++
			// Groups: 1 marker, 2 first number, 3 dash, 4 second number.
			// The chunk between the two numbers is kept verbatim, so the
			// dash glyph round-trips whether it is a hyphen or an en-dash.
			first := Segment{Kind: KindCrossRef, Start: m[4], End: m[5]}
			dash := Segment{Kind: KindOther, Start: m[5], End: m[8]}
			second := Segment{Kind: KindCrossRef, Start: m[8], End: m[9]}

			segs = append(segs,
				Segment{Kind: KindOther, Start: start, End: first.Start},
				first, dash, second)
			start = second.End
		} else {
			m := singleMatches[si]
			si++
			// Groups: 1 marker, 2 number.
			number := Segment{Kind: KindCrossRef, Start: m[4], End: m[5]}

			segs = append(segs,
				Segment{Kind: KindOther, Start: start, End: number.Start},
				number)
			start = number.End
		}
	}

	segs = append(segs, Segment{Kind: KindOther, Start: start, End: len(input)})

	return segs
}
