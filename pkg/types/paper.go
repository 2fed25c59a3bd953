// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Columns is the fixed export header, in output order.
var Columns = []string{
	"PubmedID",
	"Title",
	"PublicationDate",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// listSeparator joins multi-valued cells in tabular output.
const listSeparator = "; "

// Author is a paper author as listed in a PubMed record.
type Author struct {
	// Name is the display name ("ForeName LastName", or the collective name).
	Name string `json:"name" yaml:"name"`

	// Affiliations lists the author's affiliation strings in source order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// Paper is one exported row. The zero value is the empty record written
// for identifiers whose detail fetch or parse failed.
type Paper struct {
	// PubmedID is the PubMed identifier (PMID).
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the publication date as PubMed renders it (e.g. "2024 Jan 5").
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists authors with at least one company affiliation.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations lists the distinct company affiliations found.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the corresponding author's e-mail address, if any.
	CorrespondingEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`

	// Authors is the raw author list used for classification. Not exported.
	Authors []Author `json:"-" yaml:"-"`
}

// Row renders p as cells matching Columns.
func (p Paper) Row() []string {
	return []string{
		p.PubmedID,
		p.Title,
		p.PublicationDate,
		strings.Join(p.NonAcademicAuthors, listSeparator),
		strings.Join(p.CompanyAffiliations, listSeparator),
		p.CorrespondingEmail,
	}
}
