package geg

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	acceptLanguage = "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7"
	newRelicID     = "VwIAWFNRGwEIV1JRBAM="
)

// ajaxHeaders is the header profile of a postback made from the report
// page by the grid's scripts.
//
// accept-encoding, host and connection are left to the transport, which
// only advertises the encodings it can decode.
func ajaxHeaders(origin, referer string) map[string]string {
	return map[string]string{
		"accept":             "*/*",
		"accept-language":    acceptLanguage,
		"content-type":       "application/x-www-form-urlencoded; charset=UTF-8",
		"origin":             origin,
		"referer":            referer,
		"sec-ch-ua":          `"Not)A;Brand";v="8", "Chromium";v="138", "Google Chrome";v="138"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"user-agent":         userAgent,
		"x-newrelic-id":      newRelicID,
	}
}

// documentHeaders is the header profile of a top-level page navigation.
func documentHeaders() map[string]string {
	return map[string]string{
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"accept-language": acceptLanguage,
		"sec-fetch-dest":  "document",
		"sec-fetch-mode":  "navigate",
		"sec-fetch-site":  "same-origin",
		"user-agent":      userAgent,
	}
}
