package workflows

import (
	"context"
	"errors"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
)

var errNoSettings = errors.New("workflow called without settings")

// openStore checks ctx and returns the store described by s.
func openStore(ctx context.Context, s *configs.Settings) (*secrets.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errNoSettings
	}
	return s.Store()
}

// defaultPayload returns the payload written when no config exists yet.
func defaultPayload() (secrets.Payload, error) {
	creds, err := credentials.Defaults()
	if err != nil {
		return nil, err
	}
	return creds.Payload(), nil
}

// loadCredentials loads the auth config, which must already exist, and
// returns its typed view.
func loadCredentials(store *secrets.Store) (*credentials.Credentials, secrets.Source, error) {
	result, err := store.LoadDetailed(nil)
	if err != nil {
		return nil, 0, err
	}
	creds, err := credentials.FromPayload(result.Payload)
	if err != nil {
		return nil, 0, err
	}
	return creds, result.Source, nil
}

func record(s *configs.Settings, entry audit.Entry) {
	audit.Log(s.AuditLog, entry)
}
