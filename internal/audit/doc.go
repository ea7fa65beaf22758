// Package audit records an audit trail of auth config operations.
//
// Every command that reads or writes the auth config (dump, write-json, set,
// migrate, check, htpasswd) appends one entry. The trail answers who touched
// the credentials and when; it never contains usernames or passwords from
// the payload.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line), by
// default at:
//
//	~/.config/Triplo AI/webui-auth-audit.jsonl
//
// Each entry contains:
//   - A random entry ID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - The system user running the command
//   - Operation name and the auth config path
//   - Operation-specific details (load source, service, output path)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
