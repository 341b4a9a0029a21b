// Package sirsidynix scrapes catalogues hosted on SirsiDynix Enterprise
// (*.ent.sirsidynix.net.uk). Unlike prism, the results page carries a
// service-wide availability flag inline, so no detail-page fetches happen;
// per-branch and per-copy detail is not extracted for this platform.
package sirsidynix

import (
	"context"
	"fmt"
	"strings"

	"plscrape/lib/catalogue"
	"plscrape/lib/fetch"
	"plscrape/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("platforms/sirsidynix")

const ID = "ent.sirsidynix.net.uk"

type Backend struct{}

func New(_ *fetch.Client) *Backend {
	return &Backend{}
}

func (b *Backend) CatalogueURL(service string) string {
	service = strings.ToLower(service)
	return "https://" + service + ".ent.sirsidynix.net.uk/client/en_GB/" + service + "/"
}

func plusEscape(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
}

// SearchURL builds a query url in the catalogue's own grammar:
//
//	search/results?qu=TITLE%3Ddiary+of+a+nobody+quAUTHOR%3Dgrossmith+&h=1
//
// The stray "qu" in front of the author clause looks wrong but is what the
// hosted service accepts; it is kept for parity with the live catalogues.
// See DESIGN.md.
func (b *Backend) SearchURL(catalogueURL, title, author string) string {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	var titleClause, authorClause string
	if title != "" {
		titleClause = "TITLE%3D" + plusEscape(title)
	}
	if author != "" {
		authorClause = "quAUTHOR%3D" + plusEscape(author)
	}

	url := catalogueURL + "search/results?qu=" + titleClause
	if titleClause != "" && authorClause != "" {
		url += "+"
	}
	url += authorClause
	return url + "+&h=1"
}

// SearchResults extracts one record per div.results_cell under
// div#results_wrapper.
func (b *Backend) SearchResults(ctx context.Context, doc *goquery.Document) []catalogue.SearchResultItem {
	_, span := tracer.Start(ctx, "sirsidynix:SearchResults")
	defer span.End()

	var items []catalogue.SearchResultItem
	doc.Find("div#results_wrapper").Each(func(_ int, results *goquery.Selection) {
		results.Find("div.results_cell").Each(func(_ int, record *goquery.Selection) {
			items = append(items, parseRecord(record))
		})
	})

	span.SetAttributes(attribute.Int("count", len(items)))
	return items
}

func parseRecord(record *goquery.Selection) catalogue.SearchResultItem {
	item := catalogue.NewSearchResultItem()

	link := record.Find("div.displayDetailLink a").First()
	if txt := htmlutil.Text(link); txt != "" {
		item.Title = txt
	}
	if href, exists := link.Attr("href"); exists {
		item.Link = href
		if id, ok := catalogue.ExtractItemID(href); ok {
			item.ItemID = id
		}
	}

	if txt := nestedField(record, "PUBDATE"); txt != "" {
		item.PublicationDate = txt
	}
	if txt := nestedField(record, "PARENT_AVAILABLE"); txt != "" {
		item.AvailableAt = txt
	}
	if txt := htmlutil.Text(record.Find("span.formatText").First()); txt != "" {
		item.ItemType = txt
	}

	return item
}

// nestedField reads the platform's recurring span.F > div.F > div.F field
// pattern. The first inner div holds the field label, the second holds the
// value, so the value is always the second match.
func nestedField(record *goquery.Selection, field string) string {
	sel := record.Find(fmt.Sprintf("span.%s > div.%s > div.%s", field, field, field))
	if sel.Length() < 2 {
		return ""
	}
	return htmlutil.Text(sel.Eq(1))
}
