package errors

import "errors"

// Key errors indicate unusable symmetric key material.
var (
	// ErrKeyFormat indicates the persisted key is not valid base64 or decodes to fewer than 32 bytes.
	// The key is never regenerated in this case, as that would orphan everything encrypted with it.
	ErrKeyFormat = errors.New("invalid auth key format")

	// ErrInvalidKeyLength indicates a key of the wrong size was handed to the cipher.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")
)

// Envelope errors indicate a stored envelope that must not be trusted.
var (
	// ErrUnsupportedVersion indicates the envelope was written by an unknown scheme.
	ErrUnsupportedVersion = errors.New("unsupported auth payload version")

	// ErrMalformedEnvelope indicates the envelope is missing fields or has undecodable fields.
	ErrMalformedEnvelope = errors.New("malformed encrypted auth payload")

	// ErrIntegrity indicates the authentication tag did not verify.
	ErrIntegrity = errors.New("authentication data integrity check failed")
)

// Store errors indicate problems with the persisted configuration.
var (
	// ErrConfigNotFound indicates there is no config file and no fallback was supplied.
	ErrConfigNotFound = errors.New("auth config not found")

	// ErrInvalidConfig indicates the config file or decrypted content is not a JSON object.
	ErrInvalidConfig = errors.New("invalid auth configuration content")

	// ErrInvalidPayload indicates a caller supplied a payload that cannot be stored.
	ErrInvalidPayload = errors.New("invalid auth payload")

	// ErrNoPayload indicates write-json was given empty input.
	ErrNoPayload = errors.New("no JSON payload provided")
)

// Credential errors indicate issues with credential lookups.
var (
	// ErrUnknownService indicates the service name is neither webui nor novnc.
	ErrUnknownService = errors.New("unknown credential service")

	// ErrUnknownKeyBackend indicates the settings name a key backend that does not exist.
	ErrUnknownKeyBackend = errors.New("unknown key backend")
)

// Settings errors indicate an unusable settings file.
var (
	// ErrInvalidSettings indicates the settings file is not valid TOML or has unknown keys.
	ErrInvalidSettings = errors.New("invalid settings file")

	// ErrSettingsExist indicates settings init would overwrite an existing file.
	ErrSettingsExist = errors.New("settings file already exists")
)

// Audit errors.
var (
	// ErrInvalidDateFormat indicates a date filter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
