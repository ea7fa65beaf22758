// Package logger prints diagnostic messages for the triplo-webui commands.
//
// Verbosity follows the command-line flags:
//
//   - --verbose: info, warning and error messages
//   - --debug: everything, including debug details
//
// Warnf and Errorf are shown without either flag. Every message goes to Out,
// which defaults to stderr so that dumped payloads on stdout stay parseable.
//
// Secret values (passwords, key bytes, decrypted payloads) must never be
// passed to the logger.
package logger
