package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_http_request  = "http.request"
	report_http_response = "http.response"
)

const redacted = "<redacted>"

// RedactedFormFields are form fields whose values never appear in dumps.
var RedactedFormFields = []string{
	"ctl00$txtSenha",
}

var redactedHeaders = []string{
	"Authorization",
	"Cookie",
	"Set-Cookie",
}

// Output receives full dumps of HTTP exchanges, keyed by a file-like name.
type Output interface {
	Write(id string, contents string)
}

type exchangeKeyType int

var exchangeKey exchangeKeyType

type exchange struct {
	seq   uint64
	start time.Time
}

type httpInstrument struct {
	tel    API
	output Output
	seq    *atomic.Uint64
}

// InstrumentResty reports every exchange made by `client` and records it
// as an event on the span of the request context. With a non-nil `output`
// each exchange is also dumped, with credentials and cookies redacted.
func InstrumentResty(client *resty.Client, tel API, output Output) {
	inst := httpInstrument{
		tel:    tel,
		output: output,
		seq:    &atomic.Uint64{},
	}
	client.OnBeforeRequest(inst.before)
	client.OnAfterResponse(inst.after)
	client.OnError(inst.failed)
}

func (i httpInstrument) before(_ *resty.Client, req *resty.Request) error {
	ex := exchange{
		seq:   i.seq.Add(1),
		start: time.Now(),
	}
	i.tel.ReportDebug(report_http_request, ex.seq, req.Method, req.URL)
	req.SetContext(context.WithValue(req.Context(), exchangeKey, ex))
	return nil
}

func (i httpInstrument) after(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	ex, _ := ctx.Value(exchangeKey).(exchange)
	elapsed := time.Since(ex.start)

	i.tel.ReportDebug(report_http_response, ex.seq, res.Request.Method, res.StatusCode(), elapsed.String())
	trace.SpanFromContext(ctx).AddEvent("http exchange", trace.WithAttributes(
		attribute.String("http.method", res.Request.Method),
		attribute.String("http.url", res.Request.URL),
		attribute.Int("http.status_code", res.StatusCode()),
		attribute.Int("http.response_size", len(res.Body())),
		attribute.Int64("http.duration_ms", elapsed.Milliseconds()),
	))

	if i.output != nil {
		i.output.Write(dumpName(ex.seq, res.Request), dumpExchange(res))
	}
	return nil
}

func (i httpInstrument) failed(req *resty.Request, err error) {
	ex, ok := req.Context().Value(exchangeKey).(exchange)
	if !ok {
		// never reached the hooks, ex. the rate limiter gave up on a cancelled context
		i.tel.ReportBroken(report_http_response, err, req.Method, req.URL)
		return
	}
	i.tel.ReportBroken(report_http_response, err, ex.seq, req.Method, req.URL, time.Since(ex.start))
	trace.SpanFromContext(req.Context()).RecordError(err)
}

// dumpName is "<seq>_<method>_<last path element>.txt", ex. "003_post_index.aspx.txt".
func dumpName(seq uint64, req *resty.Request) string {
	name := "root"
	parsed, err := url.Parse(req.URL)
	if err == nil && path.Base(parsed.Path) != "/" && path.Base(parsed.Path) != "." {
		name = path.Base(parsed.Path)
	}
	return fmt.Sprintf("%03d_%s_%s.txt", seq, strings.ToLower(req.Method), name)
}

func writeHeaders(out *strings.Builder, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		for _, value := range headers[key] {
			if slices.Contains(redactedHeaders, http.CanonicalHeaderKey(key)) {
				value = redacted
			}
			fmt.Fprintf(out, "%s: %s\n", key, value)
		}
	}
}

// redactForm masks RedactedFormFields of an url encoded body, anything
// that does not parse as a form is returned as is.
func redactForm(body string) string {
	form, err := url.ParseQuery(body)
	if err != nil {
		return body
	}
	changed := false
	for _, field := range RedactedFormFields {
		if form.Has(field) {
			form.Set(field, redacted)
			changed = true
		}
	}
	if !changed {
		return body
	}
	return form.Encode()
}

func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<unreadable body: %v>", err)
	}
	defer body.Close()
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<unreadable body: %v>", err)
	}
	return redactForm(string(contents))
}

func dumpExchange(res *resty.Response) string {
	var out strings.Builder

	fmt.Fprintf(&out, "> %s %s\n", res.Request.Method, res.Request.URL)
	if raw := res.Request.RawRequest; raw != nil {
		writeHeaders(&out, raw.Header)
		out.WriteString("\n")
		out.WriteString(requestBody(raw))
	}

	fmt.Fprintf(&out, "\n\n< %s\n", res.Status())
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	out.Write(res.Body())
	return out.String()
}
