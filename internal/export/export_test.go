// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const header = "PubmedID,Title,PublicationDate,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email"

func samplePapers() []types.Paper {
	return []types.Paper{
		{PubmedID: "1", Title: "Paper One", PublicationDate: "2024 Jan"},
		{},
		{
			PubmedID:            "3",
			Title:               "Drugs, targets and trials",
			PublicationDate:     "2023 Mar 14",
			NonAcademicAuthors:  []string{"Ana Lee", "Raj Patel"},
			CompanyAffiliations: []string{"Acme Therapeutics Inc."},
			CorrespondingEmail:  "ana@acme.com",
		},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"papers.csv", FormatCSV},
		{"papers", FormatCSV},
		{"out/papers.txt", FormatCSV},
		{"papers.yaml", FormatYAML},
		{"papers.YML", FormatYAML},
		{"papers.json", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFor(tt.path))
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, samplePapers()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, header, lines[0])
	assert.Equal(t, "1,Paper One,2024 Jan,,,", lines[1])
	assert.Equal(t, ",,,,,", lines[2])
	assert.Equal(t, `3,"Drugs, targets and trials",2023 Mar 14,Ana Lee; Raj Patel,Acme Therapeutics Inc.,ana@acme.com`, lines[3])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, header+"\n", buf.String())
}

func TestWrite_ReportsDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.csv")

	var out bytes.Buffer
	require.NoError(t, Write(path, samplePapers(), &out))
	assert.Equal(t, "Results saved to "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), header+"\n"))
}

func TestWrite_OverwritesNotAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than the export\n"+strings.Repeat("x", 4096)), 0o644))

	require.NoError(t, Write(path, samplePapers(), &bytes.Buffer{}))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Write(path, samplePapers(), &bytes.Buffer{}))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(second), "stale")
}

func TestWrite_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yaml")
	require.NoError(t, Write(path, samplePapers(), &bytes.Buffer{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []types.Paper
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Paper One", got[0].Title)
	assert.Equal(t, "ana@acme.com", got[2].CorrespondingEmail)
	assert.Contains(t, string(data), "non_academic_authors:")
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")
	require.NoError(t, Write(path, samplePapers(), &bytes.Buffer{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0]["pubmed_id"])
	assert.NotContains(t, got[2], "Authors")
	assert.NotContains(t, string(data), "null")

	// The empty record carries every column with empty values.
	assert.Equal(t, map[string]any{
		"pubmed_id":                  "",
		"title":                      "",
		"publication_date":           "",
		"non_academic_authors":       []any{},
		"company_affiliations":       []any{},
		"corresponding_author_email": "",
	}, got[1])
}

func TestWrite_EmptyRecordSameFieldsAcrossFormats(t *testing.T) {
	dir := t.TempDir()
	papers := []types.Paper{{}}

	jsonPath := filepath.Join(dir, "p.json")
	yamlPath := filepath.Join(dir, "p.yaml")
	require.NoError(t, Write(jsonPath, papers, &bytes.Buffer{}))
	require.NoError(t, Write(yamlPath, papers, &bytes.Buffer{}))

	jsonData, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	yamlData, err := os.ReadFile(yamlPath)
	require.NoError(t, err)

	var fromJSON, fromYAML []map[string]any
	require.NoError(t, json.Unmarshal(jsonData, &fromJSON))
	require.NoError(t, yaml.Unmarshal(yamlData, &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)

	// The caller's records are not modified.
	assert.Nil(t, papers[0].NonAcademicAuthors)
}

func TestWrite_UncreatableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "papers.csv")

	var out bytes.Buffer
	err := Write(path, samplePapers(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
	assert.Empty(t, out.String())
}
