package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

// basePath derives the base output path from the output flag and a fallback name.
// If output has a known format extension (.dot, .svg, .png), that extension is
// stripped so per-format extensions can be appended.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case "dot", "svg", "png":
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	fallback  string // base name used when output is empty
	output    string
	toStdout  bool // single-format runs with no output go to stdout
}

// writeArtifacts writes each requested format to its own file.
// A single format with an empty output path goes to stdout when toStdout is
// set; otherwise file names are derived from the base path plus the format
// extension.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 {
		data, ok := p.artifacts[p.formats[0]]
		if !ok {
			return fmt.Errorf("missing artifact for format %q", p.formats[0])
		}
		if p.output == "" && p.toStdout {
			return writeFile(data, "")
		}
		path := p.output
		if path == "" {
			path = p.fallback + "." + p.formats[0]
		}
		if err := writeFile(data, path); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(p.output, p.fallback)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("missing artifact for format %q", format)
		}
		path := base + "." + format
		if err := writeFile(data, path); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
