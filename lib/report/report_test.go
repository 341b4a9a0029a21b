package report

import (
	"bytes"
	"testing"

	"plscrape/lib/catalogue"

	"github.com/stretchr/testify/require"
)

func fixtureSession() *catalogue.SearchSession {
	item := catalogue.NewSearchResultItem()
	item.ItemID = "42"
	item.Title = "The Diary of a Nobody"
	item.PublicationDate = "1999"
	item.AvailableAt = "Available at Central Library."
	item.Branches = []catalogue.BranchResult{
		{
			Name: "Central Library",
			Items: []catalogue.CatalogueItem{
				{Status: "Available", Barcode: "90210", Shelfmark: "AF GRO", ItemType: "Adult Fiction"},
				{Status: "On Loan", Barcode: "90211", Shelfmark: "AF GRO", ItemType: "Adult Fiction"},
			},
		},
	}

	return &catalogue.SearchSession{
		Title:     "diary of a nobody",
		Author:    "grossmith",
		Service:   "islington",
		SearchURL: "https://prism.librarymanagementcloud.co.uk/islington/items?query=x",
		Items:     []catalogue.SearchResultItem{item},
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, []*catalogue.SearchSession{fixtureSession()})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "LIBRARY SERVICE: islington")
	require.Contains(t, out, "The Diary of a Nobody")
	require.Contains(t, out, "1 records found")
	require.Contains(t, out, `class="available"`)
	require.Contains(t, out, `class="unavailable"`)
	require.Contains(t, out, "Central Library")
}

func TestWriteHTMLSessionErrors(t *testing.T) {
	session := &catalogue.SearchSession{Service: "islington", Title: "bedlam"}
	session.Errorf("could not get web page")

	var buf bytes.Buffer
	err := WriteHTML(&buf, []*catalogue.SearchSession{session})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "ERROR: could not get web page")
	require.Contains(t, out, "0 records found")
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	WriteConsole(&buf, fixtureSession())

	out := buf.String()
	require.Contains(t, out, "The Diary of a Nobody")
	require.Contains(t, out, "Central Library")
	require.Contains(t, out, "90210")
}
