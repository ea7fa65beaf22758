package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// HtpasswdOptions configures the htpasswd workflow.
type HtpasswdOptions struct {
	Settings *configs.Settings
	Service  credentials.Service

	// OutputPath is the htpasswd file to replace.
	OutputPath string
}

// HtpasswdResult contains the outcome of an htpasswd operation.
type HtpasswdResult struct {
	OutputPath string
	Username   string
}

// Htpasswd writes a bcrypt basic-auth file for the account Service accepts.
// The file is replaced atomically and is readable only by the owner.
//
// Returns ErrConfigNotFound if there is no config file.
// Returns ErrInvalidPayload if the account has no username or password.
func Htpasswd(ctx context.Context, opts HtpasswdOptions) (*HtpasswdResult, error) {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return nil, err
	}
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("no output path given")
	}
	outputPath := utils.ExpandPath(opts.OutputPath)

	creds, _, err := loadCredentials(store)
	if err != nil {
		return nil, err
	}

	data, err := creds.Htpasswd(opts.Service)
	if err != nil {
		return nil, err
	}
	account, err := creds.Effective(opts.Service)
	if err != nil {
		return nil, err
	}

	if err := secrets.WriteFileAtomic(outputPath, data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	entry := audit.NewEntry(audit.OpHtpasswd, store.Path())
	entry.Service = string(opts.Service)
	entry.OutputPath = outputPath
	record(opts.Settings, entry)

	return &HtpasswdResult{OutputPath: outputPath, Username: account.Username}, nil
}
