package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestStrippedText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tr><td id="c"> <b> 123 </b>
<i>abc</i>  </td><td>  </td></tr></table>`,
	))
	if err != nil {
		t.Fatal(err)
	}

	cells := doc.Find("td")
	require.Equal(t, "123abc", GetStrippedText(cells.Get(0)))
	require.Equal(t, "", GetStrippedText(cells.Get(1)))
	require.Equal(t, "  123 \nabc  ", GetText(cells.Get(0)))
	require.Equal(t, "123abc", SelectionText(cells))
	require.Equal(t, "c", Attr(cells.Get(0), "id"))
	require.Equal(t, "", Attr(cells.Get(1), "id"))
}
