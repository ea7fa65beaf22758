// Package utils provides small helpers shared by the triplo-webui commands.
//
// Paths:
//
//   - ExpandPath: expands a leading ~ in a path
//   - EnsureParentDir: creates the owner-only parent directory of a file
//
// Input:
//
//   - Interactive: reports whether a reader is a terminal
//   - ReadPiped: reads piped input, or nothing on a terminal
//   - PromptSecret: reads a password from the terminal without echo
//
// CurrentUser names the account recorded in audit entries.
package utils
