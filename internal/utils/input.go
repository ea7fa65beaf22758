package utils

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Interactive reports whether r is a terminal. Readers that are not files,
// such as buffers handed to a command in tests, are never interactive.
func Interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ReadPiped reads everything piped into r. It returns nil without reading
// when r is a terminal, so callers can fall back to prompting. Empty input is
// returned as an empty, non-nil slice.
func ReadPiped(r io.Reader) ([]byte, error) {
	if Interactive(r) {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// PromptSecret writes prompt to w and reads one line from the terminal r
// without echoing it.
func PromptSecret(r io.Reader, w io.Writer, prompt string) (string, error) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("cannot prompt for %q: input is not a terminal", prompt)
	}

	fmt.Fprint(w, prompt)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(secret), nil
}
