package workflows

import (
	"bytes"
	"context"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	"github.com/PolarWolf314/triplo-webui/internal/credentials"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
)

// WriteJSONOptions configures the write-json workflow.
type WriteJSONOptions struct {
	Settings *configs.Settings

	// Data is the raw JSON document to store.
	Data []byte
}

// WriteJSON parses Data and saves it as the new auth config.
//
// Returns ErrNoPayload if Data is empty or whitespace.
// Returns ErrInvalidPayload if Data is not a single JSON object.
func WriteJSON(ctx context.Context, opts WriteJSONOptions) error {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(opts.Data)) == 0 {
		return kerrors.ErrNoPayload
	}

	payload, err := secrets.ParsePayload(opts.Data)
	if err != nil {
		return err
	}

	if err := store.Save(payload); err != nil {
		return err
	}

	record(opts.Settings, audit.NewEntry(audit.OpWriteJSON, store.Path()))
	return nil
}

// SetOptions configures the set workflow.
type SetOptions struct {
	Settings    *configs.Settings
	Credentials credentials.Credentials
}

// Set replaces the auth config with the given credentials.
func Set(ctx context.Context, opts SetOptions) error {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return err
	}

	if err := store.Save(opts.Credentials.Payload()); err != nil {
		return err
	}

	record(opts.Settings, audit.NewEntry(audit.OpSet, store.Path()))
	return nil
}
