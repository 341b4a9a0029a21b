// Package report renders finished search sessions, either as a standalone
// html file or as tables on the terminal.
package report

import (
	"html/template"
	"io"

	"plscrape/lib/catalogue"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"availClass": func(branches []catalogue.BranchResult) string {
		if anyBranchAvailable(branches) {
			return "available"
		}
		return "unavailable"
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<title>plscrape: Search Results</title>
<style>
body { font-family: sans-serif; }
.error { color: #b00; }
.available { color: #070; font-weight: bold; }
.unavailable { color: #b00; }
table { border-collapse: collapse; margin: 0.5em 0 1em 2em; }
td, th { border: 1px solid #999; padding: 2px 8px; text-align: left; }
</style>
</head>
<body>
{{range .}}
<h1>LIBRARY SERVICE: {{.Service}}</h1>
<h2>TITLE: {{.Title}}, AUTHOR: {{.Author}}</h2>
<p><a href="{{.SearchURL}}">{{.SearchURL}}</a></p>
<p>{{len .Items}} records found</p>
{{range .Errors}}<p class="error">ERROR: {{.}}</p>
{{end}}{{if .Items}}<ol>
{{range .Items}}<li>
<p>{{.Title}} / {{.PublicationDate}} / <span class="{{if .Branches}}{{availClass .Branches}}{{else}}unavailable{{end}}">{{.AvailableAt}}</span></p>
{{range .Branches}}<table>
<tr><th colspan="4" class="{{if .IsAvailable}}available{{else}}unavailable{{end}}">{{.Name}}</th></tr>
{{range .Items}}<tr class="{{if .IsAvailable}}available{{else}}unavailable{{end}}"><td>{{.Status}}</td><td>{{.Barcode}}</td><td>{{.Shelfmark}}</td><td>{{.ItemType}}</td></tr>
{{end}}</table>
{{end}}</li>
{{end}}</ol>
{{end}}{{end}}</body>
</html>
`))

func anyBranchAvailable(branches []catalogue.BranchResult) bool {
	for _, b := range branches {
		if b.IsAvailable() {
			return true
		}
	}
	return false
}

// WriteHTML renders the sessions as a single html report, availability
// color-coded down to the per-copy level.
func WriteHTML(w io.Writer, sessions []*catalogue.SearchSession) error {
	return reportTemplate.Execute(w, sessions)
}

// WriteConsole prints one session as tables on the terminal: a summary
// table of records, then one holdings table per record that has branch
// detail.
func WriteConsole(w io.Writer, session *catalogue.SearchSession) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("%s: title=%q author=%q", session.Service, session.Title, session.Author)
	t.AppendHeader(table.Row{"ID", "Title", "Publisher", "Date", "Type", "Available"})
	for _, item := range session.Items {
		t.AppendRow(table.Row{
			item.ItemID,
			item.Title,
			item.Publisher,
			item.PublicationDate,
			item.ItemType,
			colorAvailability(item.AvailableAt, anyBranchAvailable(item.Branches)),
		})
	}
	t.Render()

	for _, item := range session.Items {
		if len(item.Branches) == 0 {
			continue
		}
		bt := table.NewWriter()
		bt.SetOutputMirror(w)
		bt.SetTitle("holdings: %s", item.Title)
		bt.AppendHeader(table.Row{"Branch", "Status", "Barcode", "Shelfmark", "Type"})
		for _, branch := range item.Branches {
			for _, held := range branch.Items {
				bt.AppendRow(table.Row{
					branch.Name,
					colorAvailability(held.Status, held.IsAvailable()),
					held.Barcode,
					held.Shelfmark,
					held.ItemType,
				})
			}
		}
		bt.Render()
	}
}

func colorAvailability(s string, available bool) string {
	if available {
		return text.FgGreen.Sprint(s)
	}
	return text.FgRed.Sprint(s)
}
