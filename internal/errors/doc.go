// Package errors provides typed error values for triplo-webui.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The HTTP
// layer in particular must be able to tell "no config yet" apart from
// "config is corrupt or has been tampered with".
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: Key material is malformed or has the wrong size (ErrKeyFormat)
//   - Envelope errors: Stored envelope cannot be trusted (ErrIntegrity, ErrMalformedEnvelope)
//   - Store errors: Config file state (ErrConfigNotFound, ErrInvalidConfig)
//   - Credential errors: Credential lookups (ErrUnknownService)
//   - Settings errors: Settings file problems (ErrInvalidSettings, ErrUnknownKeyBackend)
//
// # Usage
//
// Return errors from internal packages with context:
//
//	return nil, fmt.Errorf("%w: mac mismatch", errors.ErrIntegrity)
//
// Handle errors in the CLI layer:
//
//	payload, err := store.Load(nil)
//	if errors.Is(err, kerrors.ErrConfigNotFound) {
//	    // Show user-friendly message
//	}
//
// Only a missing config file and a legacy plaintext file are ever turned
// into successful outcomes. Every other error reaches the caller.
package errors
