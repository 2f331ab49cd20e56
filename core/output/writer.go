// Package output writes rendered results to stdout or disk.
// Only rendered output goes to stdout; diagnostics are written elsewhere so
// the JSON stream stays clean.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// defaultBaseName names the output file when the destination is a directory.
const defaultBaseName = "sections"

// Writer writes rendered output.
type Writer struct {
	Stdout io.Writer
}

// New creates a Writer. A nil stdout means os.Stdout.
func New(stdout io.Writer) *Writer {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Writer{Stdout: stdout}
}

// Write sends data to dest and returns where it went. An empty dest or "-"
// means stdout. A dest that is an existing directory, or ends in a path
// separator, receives "sections<ext>". Parent directories are created.
func (w *Writer) Write(dest string, data []byte, ext string) (string, error) {
	if dest == "" || dest == "-" {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return "stdout", nil
	}

	path := dest
	if isDir(dest) {
		path = filepath.Join(dest, defaultBaseName+ext)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

func isDir(dest string) bool {
	if strings.HasSuffix(dest, string(filepath.Separator)) || strings.HasSuffix(dest, "/") {
		return true
	}
	info, err := os.Stat(dest)
	return err == nil && info.IsDir()
}
