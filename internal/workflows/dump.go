package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/PolarWolf314/triplo-webui/internal/audit"
	"github.com/PolarWolf314/triplo-webui/internal/configs"
	kerrors "github.com/PolarWolf314/triplo-webui/internal/errors"
	"github.com/PolarWolf314/triplo-webui/internal/secrets"
)

// Output formats for Dump.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DumpOptions configures the dump workflow.
type DumpOptions struct {
	Settings *configs.Settings

	// Pretty indents JSON output by two spaces.
	Pretty bool

	// AllowMissing makes a missing config a successful empty result.
	AllowMissing bool

	// Bootstrap writes fresh default credentials when the config is missing.
	Bootstrap bool

	// Format is FormatJSON (the default) or FormatYAML.
	Format string
}

// DumpResult contains the outcome of a dump operation.
type DumpResult struct {
	// Output is the rendered payload, without a trailing newline. Empty when
	// Missing is set.
	Output []byte

	// Missing is set when the config does not exist and AllowMissing was given.
	Missing bool

	// Source says where the payload came from.
	Source secrets.Source
}

// Dump decrypts the auth config and renders it.
//
// Returns ErrConfigNotFound if the config is missing and neither AllowMissing
// nor Bootstrap is set. Integrity and format errors are always returned.
func Dump(ctx context.Context, opts DumpOptions) (*DumpResult, error) {
	store, err := openStore(ctx, opts.Settings)
	if err != nil {
		return nil, err
	}

	var fallback secrets.Payload
	if opts.Bootstrap {
		if fallback, err = defaultPayload(); err != nil {
			return nil, err
		}
	}

	loaded, err := store.LoadDetailed(fallback)
	if errors.Is(err, kerrors.ErrConfigNotFound) && opts.AllowMissing {
		return &DumpResult{Missing: true}, nil
	}
	if err != nil {
		return nil, err
	}

	output, err := render(loaded.Payload, opts.Format, opts.Pretty)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpDump, store.Path())
	entry.Source = loaded.Source.String()
	record(opts.Settings, entry)

	return &DumpResult{Output: output, Source: loaded.Source}, nil
}

func render(p secrets.Payload, format string, pretty bool) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	case FormatYAML:
		out, err := yaml.Marshal(yamlValue(map[string]any(p)))
		if err != nil {
			return nil, err
		}
		return bytes.TrimRight(out, "\n"), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// yamlValue converts json.Number values so YAML shows them as numbers
// rather than quoted strings.
func yamlValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = yamlValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = yamlValue(val)
		}
		return out
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
