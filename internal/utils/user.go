package utils

import (
	"os"
	"os/user"
)

// CurrentUser returns the name of the user running the process, falling back
// to $USER and then $USERNAME when the account database has no entry, as in
// minimal containers. It returns "" when nothing is known.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}
	return ""
}
