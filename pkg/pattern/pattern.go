// Package pattern provides the loadable set of patterns used to locate
// footnote references, existing bookmarks, and cross-references in the two
// WordprocessingML payloads. The built-in defaults match the markup emitted
// by Supra and Pandoc; a YAML file can override individual patterns for
// documents produced by other toolchains.
package pattern

import (
	"fmt"
	"regexp"
)

// Set defines the patterns for one document toolchain.
type Set struct {
	// Metadata
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	// FootnoteReference matches a complete footnote-reference run in
	// document.xml. The whole match is treated as one opaque chunk; no
	// capture groups are consulted.
	FootnoteReference string `yaml:"footnote_reference" json:"footnote_reference"`

	// BookmarkStart matches an existing bookmark-start tag in document.xml.
	// Group 1 is the literal prefix, group 2 the decimal id.
	BookmarkStart string `yaml:"bookmark_start" json:"bookmark_start"`

	// CrossReference holds the footnotes.xml cross-reference patterns.
	CrossReference CrossReferenceConfig `yaml:"cross_reference" json:"cross_reference"`

	// Compiled patterns (populated by Compile)
	compiled *Compiled
}

// CrossReferenceConfig defines the two cross-reference pattern families.
type CrossReferenceConfig struct {
	// Single matches a reference to one footnote. Group 1 is the literal
	// marker text, group 2 the decimal footnote number.
	Single string `yaml:"single" json:"single"`

	// Range matches a reference to a span of footnotes. Group 1 is the
	// literal marker text, group 2 the first number, group 3 the dash
	// glyph, group 4 the second number.
	Range string `yaml:"range" json:"range"`
}

// Compiled holds the compiled regular expressions for a Set.
type Compiled struct {
	FootnoteReference *regexp.Regexp
	BookmarkStart     *regexp.Regexp
	Single            *regexp.Regexp
	Range             *regexp.Regexp
}

// Default returns the built-in pattern set, already compiled.
//
// The footnote-reference and bookmark patterns are fixed WordprocessingML
// fragments; the cross-reference markers are the "note N" and "notes N–M"
// forms of legal writing, with either an ASCII hyphen or an en-dash
// accepted in ranges.
func Default() *Set {
	s := &Set{
		Name:              "supra-pandoc",
		Version:           "1",
		FootnoteReference: `(<w:r><w:rPr><w:rStyle w:val="FootnoteReference" /></w:rPr><w:footnoteReference w:id=")([0-9]{1,9})(" /></w:r>)`,
		BookmarkStart:     `(<w:bookmarkStart w:id=")([0-9]{1,9})`,
		CrossReference: CrossReferenceConfig{
			Single: `(>note )([0-9]{1,9})`,
			Range:  `(>notes )([0-9]{1,9})(-|–)([0-9]{1,9})`,
		},
	}
	// The defaults are constants; failing to compile them is a
	// programming error.
	if err := s.Compile(); err != nil {
		panic(err)
	}
	return s
}

// Validate checks that the set has all required patterns.
func (s *Set) Validate() error {
	if s.FootnoteReference == "" {
		return fmt.Errorf("footnote_reference pattern is required")
	}
	if s.BookmarkStart == "" {
		return fmt.Errorf("bookmark_start pattern is required")
	}
	if s.CrossReference.Single == "" {
		return fmt.Errorf("cross_reference.single pattern is required")
	}
	if s.CrossReference.Range == "" {
		return fmt.Errorf("cross_reference.range pattern is required")
	}
	return nil
}

// Compile compiles all patterns in the set and checks that each carries the
// capture groups its consumer relies on. Returns an error on the first
// pattern that fails either check.
func (s *Set) Compile() error {
	if err := s.Validate(); err != nil {
		return err
	}

	c := &Compiled{}

	var err error
	c.FootnoteReference, err = regexp.Compile(s.FootnoteReference)
	if err != nil {
		return fmt.Errorf("compiling footnote_reference pattern %q: %w", s.FootnoteReference, err)
	}

	c.BookmarkStart, err = regexp.Compile(s.BookmarkStart)
	if err != nil {
		return fmt.Errorf("compiling bookmark_start pattern %q: %w", s.BookmarkStart, err)
	}
	if c.BookmarkStart.NumSubexp() < 2 {
		return fmt.Errorf("bookmark_start pattern %q needs 2 capture groups (prefix, id), has %d", s.BookmarkStart, c.BookmarkStart.NumSubexp())
	}

	c.Single, err = regexp.Compile(s.CrossReference.Single)
	if err != nil {
		return fmt.Errorf("compiling cross_reference.single pattern %q: %w", s.CrossReference.Single, err)
	}
	if c.Single.NumSubexp() < 2 {
		return fmt.Errorf("cross_reference.single pattern %q needs 2 capture groups (marker, number), has %d", s.CrossReference.Single, c.Single.NumSubexp())
	}

	c.Range, err = regexp.Compile(s.CrossReference.Range)
	if err != nil {
		return fmt.Errorf("compiling cross_reference.range pattern %q: %w", s.CrossReference.Range, err)
	}
	if c.Range.NumSubexp() < 4 {
		return fmt.Errorf("cross_reference.range pattern %q needs 4 capture groups (marker, first, dash, second), has %d", s.CrossReference.Range, c.Range.NumSubexp())
	}

	s.compiled = c
	return nil
}

// IsCompiled returns true if Compile has run successfully.
func (s *Set) IsCompiled() bool {
	return s.compiled != nil
}

// FootnoteReferenceRE returns the compiled footnote-reference pattern.
func (s *Set) FootnoteReferenceRE() *regexp.Regexp {
	return s.compiled.FootnoteReference
}

// BookmarkStartRE returns the compiled bookmark-start pattern.
func (s *Set) BookmarkStartRE() *regexp.Regexp {
	return s.compiled.BookmarkStart
}

// SingleRE returns the compiled single cross-reference pattern.
func (s *Set) SingleRE() *regexp.Regexp {
	return s.compiled.Single
}

// RangeRE returns the compiled ranged cross-reference pattern.
func (s *Set) RangeRE() *regexp.Regexp {
	return s.compiled.Range
}
