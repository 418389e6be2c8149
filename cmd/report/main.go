// report computes the request analytics report from a JSON export and prints
// it to stdout. It needs no database: the export carries the records.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/request-analytics/internal/analytics"
	"github.com/spec-kit/request-analytics/internal/config"
	"github.com/spec-kit/request-analytics/internal/domain"
	"github.com/spec-kit/request-analytics/internal/observability"
)

const dateLayout = "2006-01-02"

// export is the input document.
type export struct {
	Requests []domain.Request        `json:"requests"`
	Contacts []domain.ContactMessage `json:"contacts"`
}

type options struct {
	input      string
	from       string
	to         string
	department string
	status     string
	seed       int
	timezone   string
	now        string
	logLevel   string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("report", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.input, "input", "i", "", `JSON export with "requests" and "contacts" ("-" reads stdin)`)
	flagSet.StringVar(&opts.from, "from", "", "first submission date, YYYY-MM-DD")
	flagSet.StringVar(&opts.to, "to", "", "last submission date, YYYY-MM-DD")
	flagSet.StringVar(&opts.department, "department", "", "only this department")
	flagSet.StringVar(&opts.status, "status", "", "only this status (New, InProgress, Answered, Closed)")
	flagSet.IntVar(&opts.seed, "seed", 0, "rotates the explanatory recommendation sentence")
	flagSet.StringVar(&opts.timezone, "tz", "UTC", "IANA timezone for calendar days")
	flagSet.StringVar(&opts.now, "now", "", "evaluation instant, RFC3339 (default: current time)")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr output")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.input == "" {
		return errors.New("--input is required")
	}

	logger := observability.NewWriterLogger(config.LoggerConfig{Level: opts.logLevel}, stderr)
	defer logger.Sync() //nolint:errcheck

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}
	now := time.Now().In(loc)
	if opts.now != "" {
		now, err = time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		now = now.In(loc)
	}
	q, err := buildQuery(opts, loc)
	if err != nil {
		return err
	}

	data, err := readExport(opts.input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("export loaded",
		zap.String("input", opts.input),
		zap.Int("requests", len(data.Requests)),
		zap.Int("contacts", len(data.Contacts)),
	)

	report := analytics.Compute(data.Requests, data.Contacts, q, now, loc)
	logger.Info("report computed",
		zap.Int("total", report.TotalCount),
		zap.Int("score", report.Score.Value),
		zap.String("grade", string(report.Score.Grade)),
	)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func buildQuery(opts options, loc *time.Location) (analytics.Query, error) {
	q := analytics.Query{Seed: opts.seed}
	if opts.from != "" {
		from, err := time.ParseInLocation(dateLayout, opts.from, loc)
		if err != nil {
			return q, fmt.Errorf("invalid --from: %w", err)
		}
		q.DateFrom = from
	}
	if opts.to != "" {
		to, err := time.ParseInLocation(dateLayout, opts.to, loc)
		if err != nil {
			return q, fmt.Errorf("invalid --to: %w", err)
		}
		q.DateTo = to
	}
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateFrom.After(q.DateTo) {
		return q, fmt.Errorf("--from %s is after --to %s", opts.from, opts.to)
	}
	if opts.department != "" {
		department := opts.department
		q.Department = &department
	}
	if opts.status != "" {
		status := domain.RequestStatus(opts.status)
		if !status.Valid() {
			return q, fmt.Errorf("unknown --status %q", opts.status)
		}
		q.Status = &status
	}
	return q, nil
}

func readExport(path string, stdin io.Reader) (*export, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		defer f.Close()
		r = f
	}
	var data export
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// validate rejects records whose status the report cannot place in one of
// the known buckets.
func (e *export) validate() error {
	for i, req := range e.Requests {
		if !req.Status.Valid() {
			return fmt.Errorf("request %d (id %q): unknown status %q", i, req.ID, req.Status)
		}
	}
	for i, msg := range e.Contacts {
		if !msg.Status.Valid() {
			return fmt.Errorf("contact %d (id %q): unknown status %q", i, msg.ID, msg.Status)
		}
	}
	return nil
}
