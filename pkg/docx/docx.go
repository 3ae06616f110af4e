// Package docx reads and rewrites the two WordprocessingML parts of a
// .docx package. The package is an ordinary zip archive; every entry
// other than word/document.xml and word/footnotes.xml passes through
// byte-for-byte.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	documentPart  = "word/document.xml"
	footnotesPart = "word/footnotes.xml"
)

// ReadParts extracts word/document.xml and word/footnotes.xml from the
// package at path. A package missing either part is not one this tool can
// process.
func ReadParts(path string) (doc string, fns string, err error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer archive.Close()

	doc, err = readEntry(&archive.Reader, documentPart)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}

	fns, err = readEntry(&archive.Reader, footnotesPart)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}

	return doc, fns, nil
}

func readEntry(archive *zip.Reader, name string) (string, error) {
	for _, file := range archive.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("missing %s", name)
}

// WriteParts writes a copy of the package at inPath to outPath with
// word/document.xml and word/footnotes.xml replaced. Entries keep their
// original order and every other entry is copied unchanged. Deflate
// compression is used throughout, matching what Word writes.
//
// inPath and outPath may be the same file: the new package is assembled
// in a temporary file next to outPath and renamed into place only after
// it is fully written, so a failure never destroys the input.
func WriteParts(inPath, outPath, doc, fns string) error {
	archive, err := zip.OpenReader(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer archive.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".noteref-*.docx")
	if err != nil {
		return fmt.Errorf("creating temporary package: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := writeArchive(tmp, &archive.Reader, doc, fns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary package: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replacing %s: %w", outPath, err)
	}
	return nil
}

func writeArchive(w io.Writer, archive *zip.Reader, doc, fns string) error {
	out := zip.NewWriter(w)

	for _, file := range archive.File {
		entry, err := out.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		})
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", file.Name, err)
		}

		switch file.Name {
		case documentPart:
			_, err = io.WriteString(entry, doc)
		case footnotesPart:
			_, err = io.WriteString(entry, fns)
		default:
			err = copyEntry(entry, file)
		}
		if err != nil {
			return fmt.Errorf("writing entry %s: %w", file.Name, err)
		}
	}

	return out.Close()
}

func copyEntry(w io.Writer, file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(w, rc)
	return err
}
