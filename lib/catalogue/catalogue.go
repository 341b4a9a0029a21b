// Package catalogue holds the result model shared by every catalogue
// backend, plus the backend registry. Backends normalize wildly different
// markup into these records, so parse shortfalls never fail: missing fields
// keep their placeholder values.
package catalogue

import (
	"context"
	"fmt"
	"regexp"

	"plscrape/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Placeholder values for fields the markup did not yield.
const (
	UnknownID    = "?"
	NotFound     = "NOT FOUND"
	NotAvailable = "NOT AVAILABLE"
)

// CatalogueItem is a single physical copy held at a branch.
type CatalogueItem struct {
	Status    string
	Barcode   string
	Shelfmark string
	ItemType  string
}

func (i CatalogueItem) IsAvailable() bool {
	return textutil.EqualsFold(i.Status, "available")
}

// BranchResult is one library branch's holdings for a title.
type BranchResult struct {
	Name  string
	Items []CatalogueItem
}

func (b BranchResult) IsAvailable() bool {
	for _, item := range b.Items {
		if item.IsAvailable() {
			return true
		}
	}
	return false
}

// SearchResultItem is one bibliographic record from a results page.
type SearchResultItem struct {
	ItemID          string
	Link            string
	Title           string
	Publisher       string
	PublicationDate string
	ItemType        string
	Summary         string
	AvailableAt     string
	Branches        []BranchResult
}

// NewSearchResultItem returns a record with every field at its placeholder.
// The branch list is allocated per record, never shared.
func NewSearchResultItem() SearchResultItem {
	return SearchResultItem{
		ItemID:          UnknownID,
		Link:            NotFound,
		Title:           NotFound,
		Publisher:       NotFound,
		PublicationDate: NotFound,
		ItemType:        NotFound,
		Summary:         NotFound,
		AvailableAt:     NotAvailable,
		Branches:        []BranchResult{},
	}
}

var itemIDPattern = regexp.MustCompile(`items/([0-9]+)`)

// ExtractItemID pulls the numeric record id out of a detail-page link like
// "/islington/items/42?query=...". Absence is a valid state: records whose
// link doesn't carry an id keep the "?" placeholder.
func ExtractItemID(link string) (string, bool) {
	m := itemIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SearchSession accumulates the outcome of one search request. It is
// populated by a single run and read-only afterward.
type SearchSession struct {
	Title        string
	Author       string
	Service      string
	CatalogueURL string
	SearchURL    string
	Items        []SearchResultItem
	Errors       []string
}

func (s *SearchSession) Errorf(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Backend translates a library service id into catalogue urls and parses
// that platform's result markup. SearchResults may fetch additional pages:
// availability and branch data live on each item's detail page.
type Backend interface {
	CatalogueURL(service string) string
	SearchURL(catalogueURL, title, author string) string
	SearchResults(ctx context.Context, doc *goquery.Document) []SearchResultItem
}
