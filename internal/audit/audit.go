package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// Operation names.
const (
	OpDump      = "dump"
	OpWriteJSON = "write-json"
	OpSet       = "set"
	OpMigrate   = "migrate"
	OpCheck     = "check"
	OpHtpasswd  = "htpasswd"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // System user running the command.
	Operation string `json:"op"`
	Path      string `json:"path"` // Auth config file.

	// Optional fields depending on operation.
	Source     string `json:"source,omitempty"`      // For loads: envelope, legacy or fallback.
	Service    string `json:"service,omitempty"`     // For check/htpasswd.
	Outcome    string `json:"outcome,omitempty"`     // For check: match or mismatch.
	OutputPath string `json:"output_path,omitempty"` // For htpasswd.
}

// NewEntry returns an entry for op on the auth config at path, with the
// current system user filled in.
func NewEntry(op, path string) Entry {
	return Entry{Operation: op, Path: path, User: utils.CurrentUser()}
}

// Log appends an entry to the audit log at logPath. An empty logPath
// disables auditing. Failures are ignored.
func Log(logPath string, entry Entry) {
	if logPath == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	if err := utils.EnsureParentDir(logPath); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log at logPath.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(logPath string) ([]Entry, error) {
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}

	return entries, nil
}
