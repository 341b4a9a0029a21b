package htmlutil

import (
	"bytes"
	"regexp"

	"plscrape/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Text returns the cleaned-up visible text of the first node in sel.
func Text(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return textutil.Clean(GetText(sel.Nodes[0]))
}

// FilterClass narrows sel down to nodes whose class attribute matches re.
// Catalogue markup tags table cells with composite classes like
// "item-status available", which plain css selectors cannot match on.
func FilterClass(sel *goquery.Selection, re *regexp.Regexp) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return re.MatchString(s.AttrOr("class", ""))
	})
}
