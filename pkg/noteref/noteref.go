// Package noteref turns the plain cross-reference numerals in a legal
// document's footnotes ("see supra note 3") into live NOTEREF fields bound
// to bookmarks on the footnote references they point at.
//
// The pipeline has four stages run in strict sequence: determine the first
// free bookmark id, lex the two XML payloads into segments, parse the
// segments into typed branches, and render the branches back out with the
// new markup injected. Everything outside the recognized patterns is
// reproduced byte-for-byte.
package noteref

import (
	"io"
	"log/slog"

	"github.com/coolbeans/noteref/pkg/bookmark"
	"github.com/coolbeans/noteref/pkg/lex"
	"github.com/coolbeans/noteref/pkg/parse"
	"github.com/coolbeans/noteref/pkg/pattern"
	"github.com/coolbeans/noteref/pkg/render"
)

type config struct {
	logger   *slog.Logger
	patterns *pattern.Set
}

// Option configures a Process call.
type Option func(*config)

// WithLogger injects a logger for pipeline diagnostics. Without it the
// pipeline is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPatterns substitutes a compiled pattern set for the built-in
// defaults.
func WithPatterns(pats *pattern.Set) Option {
	return func(c *config) {
		if pats != nil {
			c.patterns = pats
		}
	}
}

// Process rewrites the document.xml and footnotes.xml payloads of one
// package. It returns the new payloads, or the error from the first stage
// that failed; on error neither output is usable and nothing should be
// written.
//
// Segments and branches borrow from doc and fns rather than copying, so
// both inputs must stay alive for the duration of the call.
func Process(doc, fns string, opts ...Option) (string, string, error) {
	cfg := config{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		patterns: pattern.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger

	startID, err := bookmark.StartingID(doc, cfg.patterns)
	if err != nil {
		return "", "", err
	}
	log.Debug("determined starting bookmark id", "id", startID)

	docSegs := lex.Document(doc, cfg.patterns)
	fnSegs := lex.Footnotes(fns, cfg.patterns)
	log.Debug("lexing finished",
		"document_segments", len(docSegs),
		"footnote_segments", len(fnSegs))

	docBranches := parse.Document(doc, docSegs)
	fnBranches, referenced, err := parse.Footnotes(fns, fnSegs)
	if err != nil {
		return "", "", err
	}
	log.Debug("parsing finished",
		"document_branches", len(docBranches),
		"footnote_branches", len(fnBranches),
		"referenced_footnotes", referenced.Len())

	docOut, refIDs, err := render.Document(docBranches, referenced, startID)
	if err != nil {
		return "", "", err
	}
	fnOut, err := render.Footnotes(fnBranches, refIDs)
	if err != nil {
		return "", "", err
	}
	log.Debug("rendering finished", "bookmarks_added", len(refIDs))

	return docOut, fnOut, nil
}
