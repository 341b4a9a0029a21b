package sirsidynix

import (
	"bytes"
	"context"
	"testing"

	"plscrape/lib/catalogue"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCatalogueURL(t *testing.T) {
	b := New(nil)
	require.Equal(
		t,
		"https://brent.ent.sirsidynix.net.uk/client/en_GB/brent/",
		b.CatalogueURL("Brent"),
	)
}

func TestSearchURL(t *testing.T) {
	b := New(nil)
	catalogueURL := "https://brent.ent.sirsidynix.net.uk/client/en_GB/brent/"

	testCases := []struct {
		title    string
		author   string
		expected string
	}{
		{
			title:    "diary of a nobody",
			author:   "grossmith",
			expected: catalogueURL + "search/results?qu=TITLE%3Ddiary+of+a+nobody+quAUTHOR%3Dgrossmith+&h=1",
		},
		{
			title:    "diary of a nobody",
			expected: catalogueURL + "search/results?qu=TITLE%3Ddiary+of+a+nobody+&h=1",
		},
		{
			author:   "grossmith",
			expected: catalogueURL + "search/results?qu=quAUTHOR%3Dgrossmith+&h=1",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, b.SearchURL(catalogueURL, test.title, test.author))
	}
}

const resultsPage = `<html><body>
<div id="results_wrapper">
  <div class="results_cell">
    <div class="displayDetailLink"><a href="/client/en_GB/brent/search/detailnonmodal/ent:$002f$002fSD_ILS$002f0$002fSD_ILS:12345/one">The Diary of a Nobody</a></div>
    <span class="PUBDATE">
      <div class="PUBDATE">
        <div class="PUBDATE">Publication Date:</div>
        <div class="PUBDATE">1999</div>
      </div>
    </span>
    <span class="PARENT_AVAILABLE">
      <div class="PARENT_AVAILABLE">
        <div class="PARENT_AVAILABLE">Available:</div>
        <div class="PARENT_AVAILABLE">Yes</div>
      </div>
    </span>
    <span class="formatText">Book</span>
  </div>
  <div class="results_cell">
    <div class="displayDetailLink"><a href="/client/en_GB/brent/items/77?noise">Bedlam</a></div>
  </div>
</div>
</body></html>`

func parseDoc(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(page))
	require.NoError(t, err)
	return doc
}

func TestSearchResults(t *testing.T) {
	b := New(nil)
	items := b.SearchResults(context.Background(), parseDoc(t, resultsPage))
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "The Diary of a Nobody", first.Title)
	// the label div comes first, the value second
	require.Equal(t, "1999", first.PublicationDate)
	require.Equal(t, "Yes", first.AvailableAt)
	require.Equal(t, "Book", first.ItemType)
	// no per-branch detail on this platform
	require.Empty(t, first.Branches)

	second := items[1]
	require.Equal(t, "Bedlam", second.Title)
	require.Equal(t, "77", second.ItemID)
	require.Equal(t, catalogue.NotFound, second.ItemType)
	require.Equal(t, catalogue.NotAvailable, second.AvailableAt)
}

func TestSearchResultsNoContainer(t *testing.T) {
	b := New(nil)
	items := b.SearchResults(context.Background(), parseDoc(t, "<html><body><div id=\"other\"></div></body></html>"))
	require.Empty(t, items)
}

func TestSearchResultsIdempotent(t *testing.T) {
	b := New(nil)
	first := b.SearchResults(context.Background(), parseDoc(t, resultsPage))
	second := b.SearchResults(context.Background(), parseDoc(t, resultsPage))
	require.Empty(t, cmp.Diff(first, second))
}
