// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// ErrMissingField matches any *MissingFieldError.
var ErrMissingField = errors.New("missing field")

// MissingFieldError reports a required element absent from a detail document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// field describes how one paper field is located in a detail document.
// Expressions are tried in order; the first match wins. esummary documents
// carry <Item Name="..."> elements, efetch documents carry named elements.
type field struct {
	name   string
	exprs  []string
	render func(*xmlquery.Node) string
	set    func(*types.Paper, string)
}

var paperFields = []field{
	{
		name:   "Id",
		exprs:  []string{"//Id", "//PMID"},
		render: (*xmlquery.Node).InnerText,
		set:    func(p *types.Paper, v string) { p.PubmedID = v },
	},
	{
		name:   "Title",
		exprs:  []string{"//Item[@Name='Title']", "//ArticleTitle", "//Title"},
		render: (*xmlquery.Node).InnerText,
		set:    func(p *types.Paper, v string) { p.Title = v },
	},
	{
		name:   "PubDate",
		exprs:  []string{"//Item[@Name='PubDate']", "//PubDate"},
		render: dateText,
		set:    func(p *types.Paper, v string) { p.PublicationDate = v },
	},
}

func parse(body []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return doc, nil
}

// ExtractIDs returns the identifiers listed in the first <IdList> of an
// esearch response, in document order. <Id> children are read one per
// element; a bare text list is split into lines. A response without an
// <IdList> yields an empty slice and no error.
func ExtractIDs(body []byte) ([]string, error) {
	doc, err := parse(body)
	if err != nil {
		return nil, err
	}

	list := xmlquery.FindOne(doc, "//IdList")
	if list == nil {
		return []string{}, nil
	}

	ids := []string{}
	if children := xmlquery.Find(list, "Id"); len(children) > 0 {
		for _, n := range children {
			if id := strings.TrimSpace(n.InnerText()); id != "" {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	for _, line := range strings.Split(list.InnerText(), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ExtractPaper reads the identifier, title and publication date from a
// detail document, plus any listed authors. If any of the three fields is
// absent it returns a zero Paper and a *MissingFieldError; partial records
// are never returned.
func ExtractPaper(body []byte) (types.Paper, error) {
	doc, err := parse(body)
	if err != nil {
		return types.Paper{}, err
	}

	var p types.Paper
	for _, f := range paperFields {
		n := findFirst(doc, f.exprs)
		if n == nil {
			return types.Paper{}, &MissingFieldError{Field: f.name}
		}
		f.set(&p, f.render(n))
	}
	p.Authors = extractAuthors(doc)
	return p, nil
}

func findFirst(doc *xmlquery.Node, exprs []string) *xmlquery.Node {
	for _, expr := range exprs {
		if n := xmlquery.FindOne(doc, expr); n != nil {
			return n
		}
	}
	return nil
}

// dateText renders a date element. efetch splits dates into <Year>,
// <Month> and <Day> children, which are joined with spaces.
func dateText(n *xmlquery.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if s := strings.TrimSpace(c.InnerText()); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return n.InnerText()
}

// extractAuthors reads efetch <AuthorList>/<Author> entries, or esummary
// <Item Name="Author"> entries when the former are absent.
func extractAuthors(doc *xmlquery.Node) []types.Author {
	var authors []types.Author

	for _, n := range xmlquery.Find(doc, "//AuthorList/Author") {
		if n.SelectAttr("ValidYN") == "N" {
			continue
		}
		a := types.Author{Name: authorName(n)}
		for _, aff := range xmlquery.Find(n, "AffiliationInfo/Affiliation") {
			if s := strings.TrimSpace(aff.InnerText()); s != "" {
				a.Affiliations = append(a.Affiliations, s)
			}
		}
		if a.Name != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) > 0 {
		return authors
	}

	for _, n := range xmlquery.Find(doc, "//Item[@Name='Author']") {
		if name := strings.TrimSpace(n.InnerText()); name != "" {
			authors = append(authors, types.Author{Name: name})
		}
	}
	return authors
}

func authorName(n *xmlquery.Node) string {
	if c := childText(n, "CollectiveName"); c != "" {
		return c
	}
	return strings.TrimSpace(childText(n, "ForeName") + " " + childText(n, "LastName"))
}

func childText(n *xmlquery.Node, name string) string {
	c := xmlquery.FindOne(n, name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.InnerText())
}
