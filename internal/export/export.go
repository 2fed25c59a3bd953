// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes paper records to CSV, YAML or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Format identifies an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension. Anything that is not
// YAML or JSON is written as CSV.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Write truncates or creates path and writes papers to it in the format
// selected by its extension, then reports the destination on w.
func Write(path string, papers []types.Paper, w io.Writer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	switch FormatFor(path) {
	case FormatYAML:
		err = WriteYAML(f, papers)
	case FormatJSON:
		err = WriteJSON(f, papers)
	default:
		err = WriteCSV(f, papers)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(w, "Results saved to %s\n", path)
	return nil
}

// WriteCSV writes the header row followed by one row per paper.
func WriteCSV(dst io.Writer, papers []types.Paper) error {
	cw := csv.NewWriter(dst)
	if err := cw.Write(types.Columns); err != nil {
		return err
	}
	for _, p := range papers {
		if err := cw.Write(p.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes papers as a YAML sequence.
func WriteYAML(dst io.Writer, papers []types.Paper) error {
	enc := yaml.NewEncoder(dst)
	enc.SetIndent(2)
	if err := enc.Encode(withLists(papers)); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes papers as an indented JSON array.
func WriteJSON(dst io.Writer, papers []types.Paper) error {
	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	if err := enc.Encode(withLists(papers)); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// withLists copies papers with nil list columns set to empty lists, so an
// empty record encodes as [] rather than null.
func withLists(papers []types.Paper) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		if p.NonAcademicAuthors == nil {
			p.NonAcademicAuthors = []string{}
		}
		if p.CompanyAffiliations == nil {
			p.CompanyAffiliations = []string{}
		}
		out[i] = p
	}
	return out
}
