package telemetry

import (
	"fmt"
)

// API is how every component reports what happened to it, tests swap it for
// a Recorder to assert on diagnostics.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that failed and needs attention.
	//
	// `id` names the component, not the line that failed: a failed grid
	// callback is "client.fetch-grid" whether the cause was the network or
	// the status code, the cause goes into params.
	//
	// ids are lowercase, underscores separate words of large components and
	// dashes the operations of a component.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that did not stop the
	// component, ex. the scan fallback being used. See ReportBroken for `id`.
	ReportWarning(id string, params ...any)

	// ReportDebug reports details that are only shown in verbose mode.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the size of something at this point in time,
	// ex. the number of records of a run. Counts are samples, not increments.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, "geg_scraper: client.login".
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return fmt.Sprintf("%s: %s", s.namespace, id)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
