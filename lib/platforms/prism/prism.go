// Package prism scrapes catalogues hosted on the Prism library management
// platform (prism.librarymanagementcloud.co.uk, formerly capitadiscovery).
// The results page only carries bibliographic summaries; availability and
// per-branch holdings live on each item's detail page, so every result costs
// one extra fetch.
package prism

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"

	"plscrape/lib/catalogue"
	"plscrape/lib/fetch"
	"plscrape/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("platforms/prism")

const ID = "prism.librarymanagementcloud.co.uk"

const baseURL = "https://prism.librarymanagementcloud.co.uk/"

const defaultDetailConcurrency = 4

type Backend struct {
	fetch *fetch.Client

	// wrap the title clause in literal quote characters, which makes the
	// catalogue match the title exactly instead of by keyword
	ExactTitle bool
	// cap on in-flight detail-page fetches per results page
	DetailConcurrency int
}

func New(fetchClient *fetch.Client) *Backend {
	return &Backend{
		fetch:             fetchClient,
		DetailConcurrency: defaultDetailConcurrency,
	}
}

func (b *Backend) CatalogueURL(service string) string {
	return baseURL + strings.ToLower(service) + "/"
}

func plusEscape(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
}

// SearchURL builds a query url in the catalogue's own grammar:
//
//	items?query=+title%3A%28diary+of+a+nobody%29+AND+author%3A%28grossmith%29#availability
//
// An absent title or author omits that clause; the AND connector only
// appears when both are present.
func (b *Backend) SearchURL(catalogueURL, title, author string) string {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if b.ExactTitle && title != "" {
		title = `"` + title + `"`
	}

	var titleClause, authorClause string
	if title != "" {
		titleClause = "+title%3A%28" + plusEscape(title) + "%29"
	}
	if author != "" {
		authorClause = "+author%3A%28" + plusEscape(author) + "%29"
	}

	url := catalogueURL + "items?query=" + titleClause
	if titleClause != "" && authorClause != "" {
		url += "+AND"
	}
	url += authorClause
	return url + "#availability"
}

// SearchResults extracts one record per direct child of div#searchResults,
// then fetches each record's detail page for availability. The detail
// fetches fan out through a bounded worker group; result order stays the
// order of the records on the page.
func (b *Backend) SearchResults(ctx context.Context, doc *goquery.Document) []catalogue.SearchResultItem {
	ctx, span := tracer.Start(ctx, "prism:SearchResults")
	defer span.End()

	var items []catalogue.SearchResultItem
	doc.Find("div#searchResults").Each(func(_ int, results *goquery.Selection) {
		results.Children().Each(func(_ int, record *goquery.Selection) {
			items = append(items, parseRecord(record))
		})
	})

	limit := b.DetailConcurrency
	if limit < 1 {
		limit = 1
	}
	group := errgroup.Group{}
	group.SetLimit(limit)
	for i := range items {
		item := &items[i]
		group.Go(func() error {
			b.fetchAvailability(ctx, item)
			return nil
		})
	}
	group.Wait()

	span.SetAttributes(attribute.Int("count", len(items)))
	return items
}

func parseRecord(record *goquery.Selection) catalogue.SearchResultItem {
	item := catalogue.NewSearchResultItem()

	// the record's id attribute holds the item's detail link
	item.Link = record.AttrOr("id", catalogue.NotFound)
	if id, ok := catalogue.ExtractItemID(item.Link); ok {
		item.ItemID = id
	}

	summary := record.Find("div.summary").First()
	if title, exists := summary.Find("h2.title a").First().Attr("title"); exists {
		item.Title = title
	}
	if txt := htmlutil.Text(summary.Find("div.publisher span.publisher").First()); txt != "" {
		item.Publisher = txt
	}
	if txt := htmlutil.Text(summary.Find("div.summarydetail span.summarydetail").First()); txt != "" {
		item.Summary = txt
	}

	return item
}

// fetchAvailability fills in the availability summary and per-branch
// holdings from the item's detail page. A failed fetch degrades this one
// item to its "NOT AVAILABLE" placeholder instead of failing the search.
func (b *Backend) fetchAvailability(ctx context.Context, item *catalogue.SearchResultItem) {
	if item.Link == catalogue.NotFound {
		return
	}

	raw, err := b.fetch.GetHTML(ctx, item.Link)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch item detail page", "link", item.Link, "err", err)
		return
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(raw))
	if err != nil {
		slog.WarnContext(ctx, "failed to parse item detail page", "link", item.Link, "err", err)
		return
	}

	avail := doc.Find("div#availability").First()
	if avail.Length() == 0 {
		return
	}

	if txt := htmlutil.Text(avail.Find("div.status p.branches").First()); txt != "" {
		item.AvailableAt = txt
	}

	avail.Find("ul.options").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		item.Branches = append(item.Branches, branchResult(li))
	})
}

var itemStatusClass = regexp.MustCompile(`^item-status`)

// branchResult parses one branch block: a name span and a table whose rows
// each describe one physical copy. Copy status sits in a cell with a
// composite class like "item-status available".
func branchResult(branch *goquery.Selection) catalogue.BranchResult {
	out := catalogue.BranchResult{Items: []catalogue.CatalogueItem{}}

	name := branch.Find("span[itemprop=name]").First()
	if name.Length() == 0 {
		return out
	}
	out.Name = htmlutil.Text(name)

	branch.Find("tbody").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		item := catalogue.CatalogueItem{}
		item.Barcode = htmlutil.Text(row.Find("span[itemprop=serialNumber]").First())
		item.Shelfmark = htmlutil.Text(row.Find("span[itemprop=sku]").First())

		cells := row.Find("td")
		item.ItemType = htmlutil.Text(row.Find("td.loan").First())
		if item.ItemType == "" {
			item.ItemType = htmlutil.Text(cells.Eq(2))
		}
		item.Status = htmlutil.Text(htmlutil.FilterClass(cells, itemStatusClass).First())
		if item.Status == "" {
			item.Status = htmlutil.Text(cells.Eq(3))
		}

		out.Items = append(out.Items, item)
	})

	return out
}
