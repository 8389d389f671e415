package geg

import (
	"fmt"
	"strings"
)

const gridColumns = 70

// gridRow renders a report grid row of 70 cells, cells not present in
// `cells` are left empty.
func gridRow(id string, cells map[int]string) string {
	var out strings.Builder
	if id != "" {
		fmt.Fprintf(&out, `<tr id="%s">`, id)
	} else {
		out.WriteString("<tr>")
	}
	for i := 0; i < gridColumns; i++ {
		fmt.Fprintf(&out, `<td class="dxgv">%s</td>`, cells[i])
	}
	out.WriteString("</tr>\n")
	return out.String()
}

func gridTable(rows ...string) string {
	return `<div id="GridRelatorio_PanelGrid"><table id="GridRelatorio_PanelGrid_grid_DXMainTable" class="dxgvTable">` +
		"\n" + strings.Join(rows, "") + "</table></div>"
}

func headerRow() string {
	return gridRow("GridRelatorio_PanelGrid_grid_DXHeadersRow0", map[int]string{
		0: "Situação",
		1: "Nome",
		2: "CPF",
		3: "Cargo",
		4: "Status",
	})
}

// adailRow is the canonical data row of the tests.
func adailRow() string {
	return gridRow("GridRelatorio_PanelGrid_grid_DXDataRow0", map[int]string{
		0:  "FÉRIAS",
		1:  "adail viana teixeira junior",
		2:  " 086.533.907-40 ",
		3:  "Motorista Carreta",
		4:  "LIBERADO",
		7:  "3,5",
		8:  "06/02/2032",
		34: "2",
		35: "&nbsp;",
		38: "1,25",
		55: "abc",
		69: "NOVA RIO",
	})
}

func blankTaxIDRow() string {
	return gridRow("GridRelatorio_PanelGrid_grid_DXDataRow1", map[int]string{
		0: "ATIVO",
		1: "SEM DOCUMENTO",
		2: "",
		4: "LIBERADO",
	})
}

// envelope wraps markup the way the grid callback does.
func envelope(markup string) string {
	escaped := strings.NewReplacer(
		"\n", `\n`,
		`"`, `\"`,
		`'`, `\'`,
		`/`, `\/`,
	).Replace(markup)
	return `0|s/*DX*/({'result':'` + escaped + `','id':0})`
}
