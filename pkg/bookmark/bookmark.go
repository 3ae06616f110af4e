// Package bookmark determines the first bookmark id available for newly
// injected bookmarks.
package bookmark

import (
	"strconv"

	"github.com/coolbeans/noteref/pkg/pattern"
	"github.com/coolbeans/noteref/pkg/types"
)

// StartingID returns the smallest positive id that cannot collide with any
// bookmark already present in the document.xml payload.
//
// A document may already carry bookmarks for headings and the like, with
// arbitrary ids. StartingID collects every id matched by the set's
// bookmark-start pattern and returns the highest plus one, or 1 for a
// document with no bookmarks at all.
//
// An id that fails to parse as a uint32 yields a *types.ParseError. The
// caller must abort on it: a wrong starting id would corrupt every
// bookmark written afterwards.
func StartingID(doc string, pats *pattern.Set) (uint32, error) {
	var max uint32

	for _, m := range pats.BookmarkStartRE().FindAllStringSubmatch(doc, -1) {
		id, err := strconv.ParseUint(m[2], 10, 32)
		if err != nil {
			return 0, &types.ParseError{
				Field: "bookmark id",
				Value: m[2],
				Err:   err,
			}
		}
		if uint32(id) > max {
			max = uint32(id)
		}
	}

	return max + 1, nil
}
