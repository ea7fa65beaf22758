package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
)

const dayFormat = "2006-01-02"

// LogOptions selects audit entries. Empty fields do not filter.
type LogOptions struct {
	Settings *configs.Settings

	// Limit keeps only the most recent N matching entries. 0 keeps all.
	Limit int

	// Reverse lists the most recent entry first.
	Reverse bool

	User       string
	Operations []string
	Service    string

	// Outcome matches check results, e.g. OutcomeMismatch for failed logins.
	Outcome string

	// Since and Until are inclusive days in YYYY-MM-DD form.
	Since string
	Until string
}

// LogResult holds the selected entries, oldest first unless Reverse was set.
type LogResult struct {
	Entries []audit.Entry

	// Total counts every entry in the log before filtering.
	Total int

	LogPath string
}

type entryFilter func(audit.Entry) bool

// Log reads the audit log and applies the filters in opts. A missing log
// yields no entries.
//
// Returns ErrInvalidDateFormat if Since or Until is not a YYYY-MM-DD day.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Settings == nil {
		return nil, errNoSettings
	}

	filters, err := opts.filters()
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(opts.Settings.AuditLog)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	var selected []audit.Entry
	for _, e := range entries {
		if matchesAll(e, filters) {
			selected = append(selected, e)
		}
	}

	if opts.Limit > 0 && len(selected) > opts.Limit {
		selected = selected[len(selected)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(selected)
	}

	return &LogResult{
		Entries: selected,
		Total:   len(entries),
		LogPath: opts.Settings.AuditLog,
	}, nil
}

func (o LogOptions) filters() ([]entryFilter, error) {
	var filters []entryFilter

	if o.User != "" {
		filters = append(filters, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, o.User)
		})
	}

	if len(o.Operations) > 0 {
		ops := make(map[string]bool, len(o.Operations))
		for _, op := range o.Operations {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filters = append(filters, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if o.Service != "" {
		filters = append(filters, func(e audit.Entry) bool {
			return strings.EqualFold(e.Service, o.Service)
		})
	}

	if o.Outcome != "" {
		filters = append(filters, func(e audit.Entry) bool {
			return strings.EqualFold(e.Outcome, o.Outcome)
		})
	}

	if o.Since != "" {
		since, err := parseDay("since", o.Since)
		if err != nil {
			return nil, err
		}
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if o.Until != "" {
		until, err := parseDay("until", o.Until)
		if err != nil {
			return nil, err
		}
		end := until.AddDate(0, 0, 1)
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && t.Before(end)
		})
	}

	return filters, nil
}

func matchesAll(e audit.Entry, filters []entryFilter) bool {
	for _, keep := range filters {
		if !keep(e) {
			return false
		}
	}
	return true
}

func parseDay(flag, value string) (time.Time, error) {
	t, err := time.Parse(dayFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, flag, value)
	}
	return t, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime renders an entry timestamp as "YYYY-MM-DD HH:MM:SS" in UTC.
// Unparsable timestamps are returned as-is.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.UTC().Format(dayFormat + " 15:04:05")
}

// FormatDetails summarises what an entry touched: where a loaded payload
// came from, a check result, or an exported htpasswd file.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpDump, audit.OpMigrate:
		return e.Source
	case audit.OpCheck:
		if e.Outcome == "" {
			return e.Service
		}
		return fmt.Sprintf("%s (%s)", e.Service, e.Outcome)
	case audit.OpHtpasswd:
		return fmt.Sprintf("%s -> %s", e.Service, e.OutputPath)
	default:
		return ""
	}
}
