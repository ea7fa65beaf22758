// Package credentials is the typed view of the auth config payload.
//
// The payload stored by the secrets package is an arbitrary JSON object. The
// Web UI and the noVNC proxy only care about two accounts:
//
//	{
//	  "webui": {"username": "...", "password": "..."},
//	  "novnc": {"use_webui_credentials": true, "username": "...", "password": "..."}
//	}
//
// When use_webui_credentials is set, noVNC accepts the Web UI account and its
// own username and password are ignored.
//
// Check compares a login attempt in constant time. Htpasswd renders a bcrypt
// basic-auth file for the reverse proxy in front of noVNC.
package credentials
