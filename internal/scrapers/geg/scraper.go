// scraper.go ties the client and the extraction together into the full
// report flow of one account.

package geg

import (
	"context"
	"errors"
	"fmt"
	"geg-automation/internal/components/assert"
	"geg-automation/internal/components/telemetry"
)

const (
	report_scraper_scrape = "scraper.scrape"
	report_scraper_parse  = "scraper.parse"
)

// ErrNoRecords is returned when the report produced no usable record.
var ErrNoRecords = errors.New("no employee records extracted")

// Scraper runs the report flow, it holds no session state of its own so it
// can be shared between concurrent runs.
type Scraper struct {
	opts      Options
	extractor Extractor
	root      telemetry.API
	tel       telemetry.API
}

func NewScraper(opts Options, layout Layout, tel telemetry.API) Scraper {
	assert.NotNil(tel)
	scoped := telemetry.NewScopedAPI("geg_scraper", tel)
	return Scraper{
		opts:      opts,
		extractor: NewExtractor(layout, scoped),
		root:      tel,
		tel:       scoped,
	}
}

func (s Scraper) Layout() Layout {
	return s.extractor.Layout()
}

// Scrape logs in with `creds` on a new session and returns the cleaned
// records of the report. `stages` receives the page of every step and may
// be nil.
func (s Scraper) Scrape(ctx context.Context, creds Credentials, stages telemetry.Output) ([]EmployeeRecord, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	client, err := NewClient(s.opts, stages, s.root)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}

	err = client.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	err = client.OpenReport(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := client.FetchGrid(ctx)
	if err != nil {
		return nil, err
	}

	markup := Unwrap(raw)
	if markup != raw && stages != nil {
		stages.Write("html_processado.html", markup)
	}

	records, err := s.Parse(markup)
	if err != nil {
		s.tel.ReportBroken(report_scraper_scrape, err, "email", creds.Email)
		failSpan(span, err)
		return nil, err
	}
	return records, nil
}

// Parse extracts and cleans the records of already unwrapped report markup.
func (s Scraper) Parse(markup string) ([]EmployeeRecord, error) {
	records, err := s.extractor.Extract(markup)
	if err != nil {
		return nil, fmt.Errorf("geg scraper: %w", err)
	}
	extracted := len(records)
	records = Clean(records)
	s.tel.ReportDebug(report_scraper_parse, "extracted", extracted, "unique", len(records))

	if len(records) == 0 {
		return nil, fmt.Errorf("geg scraper: %w", ErrNoRecords)
	}
	return records, nil
}

// ParseResponse is Parse over a raw grid callback response.
func (s Scraper) ParseResponse(raw string) ([]EmployeeRecord, error) {
	return s.Parse(Unwrap(raw))
}
