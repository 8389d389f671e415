package geg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridCallbackPayloadIsACopy(t *testing.T) {
	payload := GridCallbackPayload()
	require.Equal(t, "ctl00$GridRelatorio$PanelGrid", payload["__CALLBACKID"])
	require.Equal(t, "c0:", payload["__CALLBACKPARAM"])
	require.Equal(t, "126", payload["ctl00$Principal$FiltroPadraoDiario$ddlEmpresa"])

	payload["__CALLBACKID"] = "changed"
	require.Equal(t, "ctl00$GridRelatorio$PanelGrid", GridCallbackPayload()["__CALLBACKID"])
}

func TestGridCallbackPayloadFields(t *testing.T) {
	expect := map[string]string{
		"ctl00$ctlFiltroPadrao$ddlAnoCiclo":   "0",
		"ctl00$ctlFiltroPadrao$ddlEmpresas":   "0",
		"ctl00$ctlFiltroPadrao$ddlOperacoes":  "0",
		"ctl00$ctlFiltroPadrao$ddlAtividades": "0",
		"ctl00$ctlFiltroPadrao$ddlCargos":     "0",
		"ctl00$ctlFiltroPadrao$ddlPessoas":    "0",
		"ctl00$ctlFiltroPadrao$hiddenEmp":     "",
		"ctl00$ctlFiltroPadrao$hiddenPessoa":  "",

		"txtNome":       "",
		"txtCpf":        "",
		"txtEmpresa":    "",
		"txtOperacao":   "",
		"txtAtividade":  "",
		"txtCargoModal": "",
		"txtAnoCiclo":   "",
		"txtCargo":      "",

		"ctl00$Principal$FiltroPadraoDiario$hdnPais":         "",
		"ctl00$Principal$FiltroPadraoDiario$hdnUF":           "",
		"ctl00$Principal$FiltroPadraoDiario$hdnLocalidade":   "",
		"ctl00$Principal$FiltroPadraoDiario$hdnTipoOperacao": "",
		"ctl00$Principal$FiltroPadraoDiario$hdnRegiaoAmbev":  "",
		"ctl00$Principal$FiltroPadraoDiario$hdnEmpresa":      "126",
		"ctl00$Principal$FiltroPadraoDiario$hdnOperacao":     "",
		"ctl00$Principal$FiltroPadraoDiario$hdnAtividade":    "6",
		"ctl00$Principal$FiltroPadraoDiario$hdnCargo":        "66,77,78,79,80,82,67,83,84,85,86,129,87,88,89,90,91,154,123,94,95,96,97,98,145,153,99,124,144,143,142,141,140,72,70,152,101,161,73,104,74,188,106,187,107,108,109,110,111,112,113,128,115,116,125,117,118,119,120,121",
		"ctl00$Principal$FiltroPadraoDiario$hdnTipoCargo":    "",
		"ctl00$Principal$FiltroPadraoDiario$ddlAtividade":    "6",
		"ctl00$Principal$FiltroPadraoDiario$ddlEmpresa":      "126",
		"ctl00$Principal$FiltroPadraoDiario$ddlOperacao":     "237",
		"ctl00$Principal$FiltroPadraoDiario$ddlRegiaoAmbev":  "61",
		"ctl00$Principal$FiltroPadraoDiario$ddlTipoCargo":    "4",
		"ctl00$Principal$FiltroPadraoDiario$ddlCargo":        "121",
		"ctl00$Principal$FiltroPadraoDiario$ddlUF":           "19",
		"ctl00$Principal$FiltroPadraoDiario$ddlLocalidade":   "270",
		"ctl00$Principal$FiltroPadraoDiario$ddlTipoOperacao": "37",

		"DXScript":        "1_142,1_80,1_135,1_91,1_79",
		"__CALLBACKID":    "ctl00$GridRelatorio$PanelGrid",
		"__CALLBACKPARAM": "c0:",
	}

	payload := GridCallbackPayload()
	require.Len(t, payload, 38)
	require.Equal(t, expect, payload)
}

func TestMergePayloadPayloadWins(t *testing.T) {
	viewState := map[string]string{
		"__VIEWSTATE":  "vs",
		"__CALLBACKID": "stale",
	}
	merged := mergePayload(viewState, GridCallbackPayload())

	require.Equal(t, "vs", merged["__VIEWSTATE"])
	require.Equal(t, "ctl00$GridRelatorio$PanelGrid", merged["__CALLBACKID"])
	require.Len(t, merged, len(GridCallbackPayload())+1)
	require.Equal(t, "stale", viewState["__CALLBACKID"])
}
