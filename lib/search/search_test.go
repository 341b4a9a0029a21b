package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plscrape/lib/catalogue"
	"plscrape/lib/fetch"
	"plscrape/lib/servicemap"
	"plscrape/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// fixtureBackend serves a catalogue rooted at a test server and counts one
// result record per li.result in the page.
type fixtureBackend struct {
	baseURL string
}

func (f *fixtureBackend) CatalogueURL(service string) string {
	return f.baseURL + "/" + service + "/"
}

func (f *fixtureBackend) SearchURL(catalogueURL, title, author string) string {
	return catalogueURL + "items?title=" + strings.ReplaceAll(title, " ", "+")
}

func (f *fixtureBackend) SearchResults(ctx context.Context, doc *goquery.Document) []catalogue.SearchResultItem {
	var items []catalogue.SearchResultItem
	doc.Find("li.result").Each(func(_ int, sel *goquery.Selection) {
		item := catalogue.NewSearchResultItem()
		item.Title = sel.Text()
		items = append(items, item)
	})
	return items
}

func newFixtureSearcher(t *testing.T, handler http.Handler) *Searcher {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	fetchClient := fetch.NewClient(fetch.Options{})
	registry := catalogue.NewRegistry(fetchClient)
	registry.Register("fixture.example.org", func(_ *fetch.Client) catalogue.Backend {
		return &fixtureBackend{baseURL: server.URL}
	})

	services := servicemap.Map{"islington": "fixture.example.org"}
	return New(registry, services, fetchClient)
}

func TestRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:search")
	defer cleanup()

	searcher := newFixtureSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><ul>
			<li class="result">The Diary of a Nobody</li>
			<li class="result">Diary of a Nobody (large print)</li>
		</ul></body></html>`)
	}))

	session, err := searcher.Run(context.Background(), "Islington", "diary of a nobody", "grossmith")
	require.NoError(t, err)

	require.Equal(t, "islington", session.Service)
	require.Contains(t, session.SearchURL, "/islington/items?title=diary+of+a+nobody")
	require.Empty(t, session.Errors)
	require.Len(t, session.Items, 2)
	require.Equal(t, "The Diary of a Nobody", session.Items[0].Title)
}

func TestRunRequiresTitleOrAuthor(t *testing.T) {
	searcher := newFixtureSearcher(t, http.NotFoundHandler())

	session, err := searcher.Run(context.Background(), "islington", "", "")
	require.NoError(t, err)
	require.Len(t, session.Errors, 1)
	require.Contains(t, session.Errors[0], "title and/or author")
	require.Empty(t, session.Items)
}

func TestRunUnconfiguredService(t *testing.T) {
	searcher := newFixtureSearcher(t, http.NotFoundHandler())

	_, err := searcher.Run(context.Background(), "atlantis", "bedlam", "")
	require.ErrorIs(t, err, catalogue.ErrServiceNotConfigured)
}

func TestRunFetchFailureRecordedOnSession(t *testing.T) {
	searcher := newFixtureSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"not": "html"}`)
	}))

	session, err := searcher.Run(context.Background(), "islington", "bedlam", "")
	require.NoError(t, err)
	require.Len(t, session.Errors, 1)
	require.Contains(t, session.Errors[0], "could not get web page")
	require.Empty(t, session.Items)
}

func TestRunFile(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:search")
	defer cleanup()

	searcher := newFixtureSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><li class="result">hit</li></body></html>`)
	}))

	input := strings.Join([]string{
		"# batch input",
		"l = islington",
		"a = grossmith",
		"not a pair",
		"x = unknown param",
		"t = diary of a nobody",
		"t = bedlam",
		"",
	}, "\n")

	sessions, err := searcher.RunFile(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// author and service persist across searches until changed
	require.Equal(t, "diary of a nobody", sessions[0].Title)
	require.Equal(t, "grossmith", sessions[0].Author)
	require.Equal(t, "islington", sessions[0].Service)
	require.Equal(t, "bedlam", sessions[1].Title)
	require.Equal(t, "grossmith", sessions[1].Author)
	require.Len(t, sessions[1].Items, 1)
}

func TestRunFileUnconfiguredServiceAborts(t *testing.T) {
	searcher := newFixtureSearcher(t, http.NotFoundHandler())

	input := "l = atlantis\nt = bedlam\n"
	_, err := searcher.RunFile(context.Background(), strings.NewReader(input))
	require.ErrorIs(t, err, catalogue.ErrServiceNotConfigured)
}
