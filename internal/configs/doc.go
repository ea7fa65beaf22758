// Package configs resolves the settings that locate the auth config, its
// key and the audit log.
//
// Settings are layered, later layers winning:
//
//   - Built-in defaults under ~/.config/Triplo AI/
//   - The TOML settings file (webui-auth.toml), if present
//   - Environment variables (WEBUI_AUTH_FILE, WEBUI_AUTH_KEY_FILE,
//     WEBUI_AUTH_KEY_BACKEND, WEBUI_AUTH_AUDIT_LOG)
//
// A missing settings file is not an error. Paths in any layer may start
// with ~; a '$' is taken literally.
//
// # Key Backends
//
//   - file: base64 key next to the auth config (the default)
//   - keyring: the OS secret service, via go-keyring
//
// Settings.KeySource and Settings.Store build the secrets values the rest of
// the program uses; nothing in this package holds global state.
package configs
