package automation

import (
	"context"
	"errors"
	"fmt"
	"geg-automation/internal/components/assert"
	"geg-automation/internal/components/chrono"
	"geg-automation/internal/components/db"
	"geg-automation/internal/components/telemetry"
	"geg-automation/internal/export"
	"geg-automation/internal/notify"
	"geg-automation/internal/scrapers/geg"
	"geg-automation/pkg/restyutil"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	report_automation_credentials = "automation.credentials"
	report_automation_run         = "automation.run"
	report_automation_output      = "automation.output"
	report_automation_run_log     = "automation.run-log"
	report_automation_records     = "automation.records"
)

var (
	// ErrNoCredentials is returned when neither the database nor the
	// configuration provide a portal account.
	ErrNoCredentials = errors.New("no portal credentials configured")
	// ErrRunInProgress is returned when the account already has a run in flight.
	ErrRunInProgress = errors.New("a run is already in progress for this account")
)

// ScrapeAPI fetches the report of one account.
//
// note: fault injection point
type ScrapeAPI interface {
	Scrape(ctx context.Context, creds geg.Credentials, stages telemetry.Output) ([]geg.EmployeeRecord, error)
}

type Config struct {
	// OutputDir receives the CSV (and XLSX) reports, debug dumps go under
	// <OutputDir>/debug/<run id>.
	OutputDir string
	Debug     bool
	XLSX      bool
	// RunTimeout bounds a whole run, zero means no deadline.
	RunTimeout  time.Duration
	Concurrency int
	Operations  export.Operations
	// Credentials are used when the database has no registered account.
	Credentials []geg.Credentials
}

// Run is the state of one automation run: its id, the account and where
// the pages of every step go.
type Run struct {
	ID          uuid.UUID
	Credentials geg.Credentials
	StartedAt   time.Time
	// Stages is nil unless debugging.
	Stages telemetry.Output
}

// Result is the outcome of one run.
type Result struct {
	RunID    uuid.UUID
	Email    string
	Records  []geg.EmployeeRecord
	CSVPath  string
	XLSXPath string
	Err      error
}

type Runner struct {
	scraper  ScrapeAPI
	store    db.Store
	config   Config
	time     chrono.TimeAPI
	notifier notify.Notifier
	stats    io.Writer
	tel      telemetry.API

	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

type runnerConfig struct {
	time     chrono.TimeAPI
	notifier notify.Notifier
	stats    io.Writer
	tel      telemetry.API
}

type RunnerOption func(cfg *runnerConfig)

func WithTime(time chrono.TimeAPI) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.time = time
	}
}

func WithNotifier(notifier notify.Notifier) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.notifier = notifier
	}
}

// WithStatistics prints the statistics table of every successful run to `w`.
func WithStatistics(w io.Writer) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.stats = w
	}
}

func WithTelemetry(tel telemetry.API) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.tel = tel
	}
}

func NewRunner(scraper ScrapeAPI, store db.Store, config Config, options ...RunnerOption) *Runner {
	assert.NotNil(scraper)
	assert.NotEmptyStr(config.OutputDir)

	cfg := runnerConfig{
		time:     chrono.StandardTime{},
		notifier: notify.Nop{},
		tel:      telemetry.SlogAPI{},
	}
	for _, opt := range options {
		opt(&cfg)
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	return &Runner{
		scraper:  scraper,
		store:    store,
		config:   config,
		time:     cfg.time,
		notifier: cfg.notifier,
		stats:    cfg.stats,
		tel:      telemetry.NewScopedAPI("automation", cfg.tel),
		locks:    map[string]*sync.Mutex{},
	}
}

func (r *Runner) lock(email string) *sync.Mutex {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

// Credentials returns the accounts registered in the database, falling
// back to the configured ones when there are none.
func (r *Runner) Credentials(ctx context.Context) ([]geg.Credentials, error) {
	registered, err := r.store.Credentials(ctx)
	if err != nil {
		r.tel.ReportBroken(report_automation_credentials, err)
		return nil, err
	}

	var out []geg.Credentials
	for _, cred := range registered {
		out = append(out, geg.Credentials{Email: cred.Email, Password: cred.Password})
	}
	if len(out) == 0 {
		out = append(out, r.config.Credentials...)
	}
	if len(out) == 0 {
		return nil, ErrNoCredentials
	}
	return out, nil
}

// RunAll runs every account, at most Config.Concurrency at a time. A failed
// account does not stop the others, the returned error joins every failure.
func (r *Runner) RunAll(ctx context.Context) ([]Result, error) {
	creds, err := r.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(creds))
	var group errgroup.Group
	group.SetLimit(r.config.Concurrency)
	for i, cred := range creds {
		group.Go(func() error {
			result, err := r.RunOne(ctx, cred)
			result.Err = err
			results[i] = result
			return nil
		})
	}
	group.Wait()

	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Email, result.Err))
		}
	}
	return results, errors.Join(errs...)
}

func (r *Runner) outputDir(email string) string {
	if r.config.Concurrency <= 1 {
		return r.config.OutputDir
	}
	// concurrent runs can start in the same second, keep their reports apart
	return filepath.Join(r.config.OutputDir, strings.ToLower(strings.TrimSpace(email)))
}

func (r *Runner) newRun(ctx context.Context, creds geg.Credentials) (Run, error) {
	run := Run{
		Credentials: creds,
		StartedAt:   r.time.Now(),
	}

	id, err := r.store.StartRun(ctx, creds.Email, run.StartedAt)
	if err != nil {
		r.tel.ReportBroken(report_automation_run_log, err, "email", creds.Email)
		return Run{}, err
	}
	run.ID = id

	if r.config.Debug {
		out, err := restyutil.NewFilesystemOutput(filepath.Join(r.config.OutputDir, "debug", id.String()))
		if err != nil {
			r.tel.ReportWarning(report_automation_output, err, "reason", "debug output disabled")
		} else {
			run.Stages = out
		}
	}
	return run, nil
}

// RunOne runs the whole flow for one account: scrape, write the reports
// and upsert the records. The outcome is written to the run log and
// failures are sent to the notifier.
func (r *Runner) RunOne(ctx context.Context, creds geg.Credentials) (Result, error) {
	lock := r.lock(creds.Email)
	if !lock.TryLock() {
		return Result{Email: creds.Email}, ErrRunInProgress
	}
	defer lock.Unlock()

	run, err := r.newRun(ctx, creds)
	if err != nil {
		return Result{Email: creds.Email}, err
	}
	r.tel.ReportDebug("run started", "id", run.ID.String(), "email", creds.Email)

	result := r.execute(ctx, run)

	err = r.store.FinishRun(context.WithoutCancel(ctx), run.ID, r.time.Now(), len(result.Records), result.Err)
	if err != nil {
		r.tel.ReportBroken(report_automation_run_log, err, "id", run.ID.String())
	}

	if result.Err != nil {
		r.tel.ReportBroken(report_automation_run, result.Err, "id", run.ID.String(), "email", creds.Email)
		err = r.notifier.NotifyFailure(context.WithoutCancel(ctx), notify.Failure{
			RunID:     run.ID.String(),
			Email:     creds.Email,
			StartedAt: run.StartedAt,
			Err:       result.Err,
		})
		if err != nil {
			r.tel.ReportWarning(report_automation_run, err, "reason", "failure notification not sent", "id", run.ID.String())
		}
		return result, result.Err
	}

	r.tel.ReportDebug("run succeeded", "id", run.ID.String(), "email", creds.Email, "records", len(result.Records))
	return result, nil
}

func (r *Runner) execute(ctx context.Context, run Run) Result {
	result := Result{RunID: run.ID, Email: run.Credentials.Email}

	if r.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.RunTimeout)
		defer cancel()
	}

	records, err := r.scraper.Scrape(ctx, run.Credentials, run.Stages)
	if err != nil {
		result.Err = err
		return result
	}

	dir := r.outputDir(run.Credentials.Email)
	result.CSVPath, err = export.WriteCSVFile(dir, run.StartedAt, records)
	if err != nil {
		r.tel.ReportBroken(report_automation_output, err, "dir", dir)
		result.Err = err
		return result
	}
	if r.config.XLSX {
		result.XLSXPath, err = export.WriteXLSXFile(dir, run.StartedAt, records)
		if err != nil {
			r.tel.ReportWarning(report_automation_output, err, "reason", "xlsx report not written", "dir", dir)
		}
	}

	err = r.store.UpsertRows(ctx, export.TableRows(records, r.config.Operations, run.StartedAt))
	if err != nil {
		result.Err = fmt.Errorf("upsert records: %w", err)
		return result
	}
	result.Records = records

	stats := geg.Summarize(records)
	r.tel.ReportCount(report_automation_records, int64(stats.Total))
	if r.stats != nil {
		export.RenderStatistics(r.stats, stats)
	}
	return result
}
