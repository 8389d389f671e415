package geg

import (
	"html"
	"strings"
)

const (
	envelopeMarker     = "s/*DX*/"
	envelopeResultOpen = "'result':'"
	envelopeResultEnd  = "','id':"
)

// Unwrap recovers the markup carried by a DevExpress callback response:
//
//	s/*DX*/({'result':'<table ...>...</table>','id':0})
//
// Text without the envelope marker is returned unchanged, so is an envelope
// without a result value or with a truncated one.
func Unwrap(raw string) string {
	if !strings.Contains(raw, envelopeMarker) || !strings.Contains(raw, "result") {
		return raw
	}

	marker := strings.Index(raw, envelopeMarker)
	rest := raw[marker+len(envelopeMarker):]

	open := strings.Index(rest, envelopeResultOpen)
	if open < 0 {
		return raw
	}
	value := rest[open+len(envelopeResultOpen):]

	end := strings.Index(value, envelopeResultEnd)
	if end <= 0 {
		return raw
	}
	value = value[:end]

	// each step runs over the output of the previous one
	value = strings.ReplaceAll(value, `\r\n`, "\n")
	value = strings.ReplaceAll(value, `\n`, "\n")
	value = strings.ReplaceAll(value, `\"`, `"`)
	value = strings.ReplaceAll(value, `\'`, `'`)
	value = strings.ReplaceAll(value, `\/`, `/`)
	return html.UnescapeString(value)
}
