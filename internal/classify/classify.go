// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify fills the author and affiliation columns of a paper
// from its raw author list.
package classify

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Classifier derives the non-academic author, company affiliation and
// corresponding e-mail columns for p.
type Classifier interface {
	Name() string
	Classify(p *types.Paper)
}

// New returns the classifier registered under name. An empty name selects
// None.
func New(name string) (Classifier, error) {
	switch name {
	case "", "none":
		return None{}, nil
	case "affiliation":
		return Affiliation{}, nil
	default:
		return nil, fmt.Errorf("unknown classifier %q: use none or affiliation", name)
	}
}

// None leaves the author columns untouched.
type None struct{}

// Name returns the classifier identifier.
func (None) Name() string { return "none" }

// Classify does nothing.
func (None) Classify(*types.Paper) {}

var (
	// companySuffixRe matches legal-entity suffixes. These name a company
	// even inside "Department of X, Y Inc." style affiliations.
	companySuffixRe = regexp.MustCompile(`(?i)(\b(inc|ltd|llc|plc|corp|corporation|gmbh|ag|b\.v|k\.k|pty)\b|\ba/s\b)`)
	companyWordRe   = regexp.MustCompile(`(?i)\b(company|pharma|pharmaceuticals?|biotech|biosciences|therapeutics|technologies|laboratories)\b`)
	academicRe      = regexp.MustCompile(`(?i)(\buniversi|\bcollege\b|\binstitut|\bschool\b|\bfaculty\b|\bacademy\b|\bhospital|\bmedical cent(er|re)\b)`)
	publicBodyRe    = regexp.MustCompile(`(?i)(\bdepartment\b|\bclinic|\bministry\b|\bfoundation\b)`)
	emailRe         = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// Affiliation classifies by affiliation text: an affiliation naming a
// company and no academic body counts as a company affiliation, and any
// author holding one is non-academic. The first e-mail address found in
// any affiliation is taken as the corresponding author's.
type Affiliation struct{}

// Name returns the classifier identifier.
func (Affiliation) Name() string { return "affiliation" }

// Classify sets the author columns of p from p.Authors.
func (Affiliation) Classify(p *types.Paper) {
	seen := make(map[string]bool)
	for _, a := range p.Authors {
		nonAcademic := false
		for _, aff := range a.Affiliations {
			if p.CorrespondingEmail == "" {
				if m := emailRe.FindString(aff); m != "" {
					p.CorrespondingEmail = m
				}
			}
			if !IsCompany(aff) {
				continue
			}
			nonAcademic = true
			if !seen[aff] {
				seen[aff] = true
				p.CompanyAffiliations = append(p.CompanyAffiliations, aff)
			}
		}
		if nonAcademic {
			p.NonAcademicAuthors = append(p.NonAcademicAuthors, a.Name)
		}
	}
}

// IsCompany reports whether an affiliation string names a company rather
// than an academic or public institution. Academic bodies always win; a
// legal-entity suffix beats generic words such as department or foundation.
func IsCompany(affiliation string) bool {
	text := emailRe.ReplaceAllString(affiliation, "")
	switch {
	case academicRe.MatchString(text):
		return false
	case companySuffixRe.MatchString(text):
		return true
	default:
		return companyWordRe.MatchString(text) && !publicBodyRe.MatchString(text)
	}
}
