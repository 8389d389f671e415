// client.go contains the session and every request made to the portal, it
// does not know anything about what is done with the report afterwards.

package geg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"geg-automation/internal/components/assert"
	"geg-automation/internal/components/telemetry"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_client_login       = "client.login"
	report_client_open_report = "client.open-report"
	report_client_fetch_grid  = "client.fetch-grid"
)

const (
	DefaultBaseURL = "https://www.genteegestao.com.br"

	loginPath  = "/portal/index.aspx"
	reportPath = "/GEG/Paginas/Relatorios/Prontuario/SituacaoCondutorAnalitico.aspx"
)

var (
	// ErrLoginRejected is returned when the portal answers the login form
	// with an empty page.
	ErrLoginRejected = errors.New("login rejected by portal")
	// ErrUnexpectedStatus is matched by every StatusError.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// StatusError is returned when a page answers with something other than 200.
type StatusError struct {
	Path string
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s: %s: %d", e.Path, ErrUnexpectedStatus.Error(), e.Code)
}

func (e StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

var tracer = telemetry.Tracer("geg-automation/internal/scrapers/geg")

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout applies to every single request.
	Timeout           time.Duration
	RequestsPerSecond float64
	CloudflareBypass  bool
	// HTTPOutput receives a dump of every request and response, it may be nil.
	HTTPOutput telemetry.Output
}

// Client is one portal session, it owns its cookie jar and must not be
// shared between runs.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	stages telemetry.Output
	tel    telemetry.API
}

// NewClient creates a fresh session, `stages` receives the page returned at
// each step of the flow and may be nil.
func NewClient(opts Options, stages telemetry.Output, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("geg_scraper", tel)

	baseUrl := opts.BaseURL
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	httpClient.SetTimeout(timeout)

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	// burst >= rps just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(rps), int(math.Max(2, math.Ceil(rps))))
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, opts.HTTPOutput)

	c := &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		stages:  stages,
		tel:     tel,
	}
	return c, nil
}

func (c *Client) stage(name string, contents string) {
	if c.stages == nil {
		return
	}
	c.stages.Write(name, contents)
}

func (c *Client) origin() string {
	return fmt.Sprintf("%s://%s", c.BaseUrl.Scheme, c.BaseUrl.Host)
}

func (c *Client) reportUrl() string {
	return c.BaseUrl.JoinPath(reportPath).String()
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Login submits the portal's login form. The portal answers a rejected
// login with an empty page, which is reported as ErrLoginRejected.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	loginError := func(err error) error {
		failSpan(span, err)
		return fmt.Errorf("geg scraper: login failed: %w", err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(loginPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login page request: %w", err),
		)
		return loginError(err)
	}
	c.stage("pagina_login.html", res.String())

	form := CaptureHiddenFields(res.String(), nil)
	form["ctl00$txtEmail"] = creds.Email
	form["ctl00$txtSenha"] = creds.Password
	form["ctl00$btnEntrar"] = "ENTRAR NO SISTEMA"
	form["__EVENTTARGET"] = ""
	form["__EVENTARGUMENT"] = ""

	res, err = c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(loginPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login request: %w", err),
		)
		return loginError(err)
	}
	c.stage("resposta_login.html", res.String())

	if len(res.Body()) == 0 {
		c.tel.ReportWarning(
			report_client_login,
			ErrLoginRejected,
			"email", creds.Email,
			"status", res.StatusCode(),
			"body_length", len(res.Body()),
		)
		return loginError(ErrLoginRejected)
	}
	return nil
}

// OpenReport navigates to the report page the way a browser would.
func (c *Client) OpenReport(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "OpenReport")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeaders(documentHeaders()).
		Get(reportPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_open_report,
			fmt.Errorf("fetch: %w", err),
		)
		failSpan(span, err)
		return fmt.Errorf("geg scraper: open report: %w", err)
	}
	c.stage("pagina_relatorio.html", res.String())

	if res.StatusCode() != http.StatusOK {
		err := StatusError{Path: reportPath, Code: res.StatusCode()}
		c.tel.ReportBroken(report_client_open_report, err)
		failSpan(span, err)
		return fmt.Errorf("geg scraper: open report: %w", err)
	}
	return nil
}

// FetchGrid reloads the report page for fresh view-state and posts the grid
// callback, it returns the raw callback response.
func (c *Client) FetchGrid(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchGrid")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(reportPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_grid,
			fmt.Errorf("fetch report page: %w", err),
		)
		failSpan(span, err)
		return "", fmt.Errorf("geg scraper: fetch grid: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_grid,
			fmt.Errorf("parse report page: %w", err),
		)
		failSpan(span, err)
		return "", fmt.Errorf("geg scraper: fetch grid: %w", err)
	}

	viewState := map[string]string{}
	captureHiddenFields(doc, viewState)
	if len(viewState) < len(ViewStateFields) {
		c.tel.ReportWarning(
			report_client_fetch_grid,
			fmt.Errorf("report page is missing view-state fields"),
			"found", len(viewState),
		)
	}

	form := url.Values{}
	for key, value := range mergePayload(viewState, GridCallbackPayload()) {
		form.Set(key, value)
	}

	res, err = c.Http.R().
		SetContext(ctx).
		SetHeaders(ajaxHeaders(c.origin(), c.reportUrl())).
		SetBody(form.Encode()).
		Post(reportPath)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_grid,
			fmt.Errorf("grid callback: %w", err),
		)
		failSpan(span, err)
		return "", fmt.Errorf("geg scraper: fetch grid: %w", err)
	}
	c.stage("resposta_ajax_dados.html", res.String())

	if res.StatusCode() != http.StatusOK {
		c.tel.ReportWarning(
			report_client_fetch_grid,
			StatusError{Path: reportPath, Code: res.StatusCode()},
			"body_length", len(res.Body()),
		)
	}
	return res.String(), nil
}
