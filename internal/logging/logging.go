package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

type Logger struct {
	Verbose bool
	Debug   bool

	// Out receives every message. Nil means os.Stderr; stdout carries
	// decrypted payloads and must stay parseable.
	Out io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.printf(color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.printf(color.YellowString("[warn] "), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.printf(color.RedString("[error] "), msg, args...)
}

func (l Logger) printf(prefix, msg string, args ...any) {
	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, prefix+msg+"\n", args...)
}
