// Package workflows provides high-level orchestration for the auth commands.
//
// Workflows coordinate the configs, secrets, credentials and audit packages
// to implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, prompts and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Opening the store described by the settings
//   - Loading, bootstrapping and migrating the auth config
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Dump: Decrypts the auth config for display (JSON or YAML)
//   - WriteJSON: Encrypts a raw JSON object as the new auth config
//   - Set: Writes both credential accounts
//   - Migrate: Encrypts a legacy plaintext config in place
//   - Check: Verifies a username and password for a service
//   - Htpasswd: Renders the reverse proxy's basic-auth file
//   - Log: Reads and filters the audit trail
//   - InitSettings: Writes the effective settings as TOML
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Dump(ctx, opts)
//	if errors.Is(err, kerrors.ErrConfigNotFound) {
//	    // "Auth config not found"
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter
// and return its error if it is already done before any file is touched.
package workflows
