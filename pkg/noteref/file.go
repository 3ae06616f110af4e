package noteref

import (
	"github.com/coolbeans/noteref/pkg/docx"
)

// ProcessPackage runs the pipeline over the .docx package at inPath and
// writes the result to outPath. The two paths may be equal, in which case
// the input is overwritten atomically. Nothing is written if any stage
// fails.
func ProcessPackage(inPath, outPath string, opts ...Option) error {
	doc, fns, err := docx.ReadParts(inPath)
	if err != nil {
		return err
	}

	docOut, fnOut, err := Process(doc, fns, opts...)
	if err != nil {
		return err
	}

	return docx.WriteParts(inPath, outPath, docOut, fnOut)
}
