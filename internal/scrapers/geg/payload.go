package geg

import "maps"

const (
	gridCallbackID    = "ctl00$GridRelatorio$PanelGrid"
	gridCallbackParam = "c0:"
)

// roles is every role id selected in the report filter of this deployment.
const roles = "66,77,78,79,80,82,67,83,84,85,86,129,87,88,89,90,91,154,123,94,95,96,97,98,145,153,99,124,144,143,142,141,140,72,70,152,101,161,73,104,74,188,106,187,107,108,109,110,111,112,113,128,115,116,125,117,118,119,120,121"

var gridCallbackPayload = map[string]string{
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
	"ctl00$Principal$FiltroPadraoDiario$hdnCargo":        roles,
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
	"__CALLBACKID":    gridCallbackID,
	"__CALLBACKPARAM": gridCallbackParam,
}

// GridCallbackPayload returns a fresh copy of the fixed filter selection sent
// with the grid callback.
func GridCallbackPayload() map[string]string {
	return maps.Clone(gridCallbackPayload)
}

// mergePayload lays `payload` over `viewState`, payload keys win on conflict.
func mergePayload(viewState, payload map[string]string) map[string]string {
	out := make(map[string]string, len(viewState)+len(payload))
	maps.Copy(out, viewState)
	maps.Copy(out, payload)
	return out
}
