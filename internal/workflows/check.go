package workflows

import (
	"context"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	"github.com/PolarWolf314/triplo-webui/internal/credentials"
)

// Check outcomes recorded in the audit log.
const (
	OutcomeMatch    = "match"
	OutcomeMismatch = "mismatch"
)

// CheckOptions configures the check workflow.
type CheckOptions struct {
	Settings *configs.Settings
	Service  credentials.Service
	Username string
	Password string
}

// CheckResult contains the outcome of a check operation.
type CheckResult struct {
	Service credentials.Service
	Match   bool
}

// Check verifies a login attempt against the stored credentials.
//
// Returns ErrConfigNotFound if there is no config file.
// Returns ErrUnknownService if Service is neither webui nor novnc.
func Check(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return nil, err
	}

	creds, _, err := loadCredentials(store)
	if err != nil {
		return nil, err
	}

	match, err := creds.Check(opts.Service, opts.Username, opts.Password)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpCheck, store.Path())
	entry.Service = string(opts.Service)
	entry.Outcome = OutcomeMismatch
	if match {
		entry.Outcome = OutcomeMatch
	}
	record(opts.Settings, entry)

	return &CheckResult{Service: opts.Service, Match: match}, nil
}
