package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/triplo-webui/internal/configs"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
)

// InitSettingsOptions configures the settings init workflow.
type InitSettingsOptions struct {
	// Settings are written as they are, usually the effective settings.
	Settings *configs.Settings

	// Path is the settings file to create.
	Path string

	// Force overwrites an existing settings file.
	Force bool
}

// InitSettings writes Settings to Path as TOML.
//
// Returns ErrSettingsExist if Path exists and Force is not set.
func InitSettings(ctx context.Context, opts InitSettingsOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.Settings == nil {
		return errNoSettings
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Force {
		return fmt.Errorf("%w: %s", kerrors.ErrSettingsExist, opts.Path)
	}

	return configs.SaveSettings(opts.Path, opts.Settings)
}
