package geg

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ViewStateFields are the hidden ASP.NET inputs every postback must echo back.
var ViewStateFields = []string{
	"__VIEWSTATE",
	"__VIEWSTATEGENERATOR",
	"__EVENTVALIDATION",
}

// CaptureHiddenFields copies the view-state inputs found in `page` into `into`
// (a new map if nil) and returns it. Inputs that are missing or have an empty
// value are left alone, a page without a form returns `into` unchanged.
func CaptureHiddenFields(page string, into map[string]string) map[string]string {
	if into == nil {
		into = map[string]string{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return into
	}
	captureHiddenFields(doc, into)
	return into
}

func captureHiddenFields(doc *goquery.Document, into map[string]string) {
	for _, name := range ViewStateFields {
		value := doc.Find("input").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return sel.AttrOr("name", "") == name
		}).First().AttrOr("value", "")
		if value == "" {
			continue
		}
		into[name] = value
	}
}
