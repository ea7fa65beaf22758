package workflows

import (
	"context"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	Settings *configs.Settings
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	// Path is the auth config file.
	Path string

	// Migrated is set when a legacy plaintext file was encrypted.
	Migrated bool
}

// Migrate loads the auth config once, which encrypts a legacy plaintext file
// in place. An already encrypted config is left untouched.
//
// Returns ErrConfigNotFound if there is no config file.
func Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return nil, err
	}

	loaded, err := store.LoadDetailed(nil)
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{
		Path:     store.Path(),
		Migrated: loaded.Source == secrets.SourceLegacy,
	}

	if result.Migrated {
		entry := audit.NewEntry(audit.OpMigrate, store.Path())
		entry.Source = loaded.Source.String()
		record(opts.Settings, entry)
	}

	return result, nil
}
