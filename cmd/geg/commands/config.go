package commands

import (
	"fmt"
	"geg-automation/internal/automation"
	"geg-automation/internal/export"
	"geg-automation/internal/scrapers/geg"
	"time"
)

type PortalConfig struct {
	BaseURL           string  `json:"base_url" split_words:"true" validate:"omitempty,url"`
	Timeout           string  `json:"timeout"`
	RunTimeout        string  `json:"run_timeout" split_words:"true"`
	RequestsPerSecond float64 `json:"requests_per_second" split_words:"true" validate:"gte=0"`
	CloudflareBypass  bool    `json:"cloudflare_bypass" split_words:"true"`
}

type DatabaseConfig struct {
	// URL is a sqlite path, a postgres:// url or a libsql:// url.
	URL string `json:"url" validate:"required"`
}

type OutputConfig struct {
	Dir   string `json:"dir" validate:"required"`
	Debug bool   `json:"debug"`
	XLSX  bool   `json:"xlsx"`
}

type ScheduleConfig struct {
	Spec     string `json:"spec"`
	Grace    string `json:"grace"`
	Timezone string `json:"timezone"`
}

type NotifyConfig struct {
	Addr     string   `json:"addr" validate:"omitempty,hostname_port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from" validate:"omitempty,email"`
	To       []string `json:"to" validate:"omitempty,dive,email"`
}

type CredentialConfig struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Config struct {
	Portal      PortalConfig       `json:"portal"`
	Database    DatabaseConfig     `json:"database"`
	Output      OutputConfig       `json:"output"`
	Schedule    ScheduleConfig     `json:"schedule"`
	Notify      NotifyConfig       `json:"notify"`
	Layout      string             `json:"layout"`
	Concurrency int                `json:"concurrency" validate:"gte=0,lte=16"`
	Operations  export.Operations  `json:"operations" ignored:"true"`
	Credentials []CredentialConfig `json:"credentials" ignored:"true" validate:"dive"`
}

func parseDuration(name, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func (c Config) scraperOptions() (geg.Options, error) {
	timeout, err := parseDuration("portal.timeout", c.Portal.Timeout, time.Minute)
	if err != nil {
		return geg.Options{}, err
	}
	return geg.Options{
		BaseURL:           c.Portal.BaseURL,
		Timeout:           timeout,
		RequestsPerSecond: c.Portal.RequestsPerSecond,
		CloudflareBypass:  c.Portal.CloudflareBypass,
	}, nil
}

func (c Config) layout() (geg.Layout, error) {
	if c.Layout == "" {
		return geg.DefaultLayout(), nil
	}
	return geg.LoadLayout(c.Layout)
}

func (c Config) operations() export.Operations {
	if len(c.Operations) == 0 {
		return export.DefaultOperations()
	}
	return c.Operations
}

func (c Config) automationConfig() (automation.Config, error) {
	runTimeout, err := parseDuration("portal.run_timeout", c.Portal.RunTimeout, 10*time.Minute)
	if err != nil {
		return automation.Config{}, err
	}

	creds := make([]geg.Credentials, len(c.Credentials))
	for i, cred := range c.Credentials {
		creds[i] = geg.Credentials{Email: cred.Email, Password: cred.Password}
	}

	return automation.Config{
		OutputDir:   c.Output.Dir,
		Debug:       c.Output.Debug,
		XLSX:        c.Output.XLSX,
		RunTimeout:  runTimeout,
		Concurrency: c.Concurrency,
		Operations:  c.operations(),
		Credentials: creds,
	}, nil
}

func (c Config) schedule() (spec string, grace time.Duration, timezone string, err error) {
	spec = c.Schedule.Spec
	if spec == "" {
		spec = automation.DefaultSchedule
	}
	grace, err = parseDuration("schedule.grace", c.Schedule.Grace, automation.DefaultGrace)
	if err != nil {
		return "", 0, "", err
	}
	timezone = c.Schedule.Timezone
	if timezone == "" {
		timezone = "America/Sao_Paulo"
	}
	return spec, grace, timezone, nil
}
