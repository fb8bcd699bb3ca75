package loader

import (
	"archive/zip"
	"bufio"
	"bytes"
	"io"
	"strings"
)

// OpenArchive opens the JAR at path as a zip.Reader for class lookups.
func OpenArchive(path string) (*zip.ReadCloser, error) {
	return zip.OpenReader(path)
}

// MainClass returns the Main-Class: value from the archive's
// META-INF/MANIFEST.MF, in internal (slash-delimited) form, or "" if the
// archive has no manifest or no Main-Class entry. Manifest lines are
// whitespace-trimmed and the dotted class name is converted to its
// internal form before use.
func MainClass(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if f.Name != "META-INF/MANIFEST.MF" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		return parseMainClass(data), nil
	}
	return "", nil
}

// parseMainClass scans manifest lines for "Main-Class: <value>", honoring
// the manifest format's line-continuation rule (a line beginning with a
// single space is a wrapped continuation of the previous line's value).
func parseMainClass(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var value strings.Builder
	inValue := false
	for scanner.Scan() {
		line := scanner.Text()
		if inValue && strings.HasPrefix(line, " ") {
			value.WriteString(strings.TrimPrefix(line, " "))
			continue
		}
		inValue = false
		const prefix = "Main-Class:"
		if strings.HasPrefix(line, prefix) {
			value.WriteString(strings.TrimSpace(line[len(prefix):]))
			inValue = true
		}
	}
	dotted := strings.TrimSpace(value.String())
	return strings.ReplaceAll(dotted, ".", "/")
}
