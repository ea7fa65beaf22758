package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLog_CreatesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpDump, Path: "/tmp/webui-auth.json"})

	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
	if info.Size() == 0 {
		t.Fatal("Audit log file is empty")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpSet})
	Log(logPath, Entry{User: "bob", Operation: OpDump})
	Log(logPath, Entry{User: "carol", Operation: OpMigrate})

	entries, err := ReadEntries(logPath)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantOps := []string{OpSet, OpDump, OpMigrate}
	for i, entry := range entries {
		if entry.Operation != wantOps[i] {
			t.Errorf("Entry %d: expected op %q, got %q", i, wantOps[i], entry.Operation)
		}
	}
	if entries[0].ID == entries[1].ID {
		t.Error("Expected distinct entry IDs")
	}
}

func TestLog_FillsIDAndTimestamp(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	before := time.Now().UTC().Add(-time.Second)
	Log(logPath, Entry{Operation: OpCheck})
	after := time.Now().UTC().Add(time.Second)

	entries, err := ReadEntries(logPath)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d (err %v)", len(entries), err)
	}
	entry := entries[0]

	if _, err := uuid.Parse(entry.ID); err != nil {
		t.Errorf("Expected a UUID entry ID, got %q", entry.ID)
	}

	ts, err := time.Parse(TimestampFormat, entry.Timestamp)
	if err != nil {
		t.Fatalf("Timestamp %q does not match %s: %v", entry.Timestamp, TimestampFormat, err)
	}
	if ts.Before(before) || ts.After(after) {
		t.Errorf("Timestamp %s outside [%s, %s]", ts, before, after)
	}
}

func TestLog_KeepsExplicitFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{ID: "fixed-id", Timestamp: "2024-01-02T03:04:05.000000Z", Operation: OpDump})

	entries, _ := ReadEntries(logPath)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "fixed-id" || entries[0].Timestamp != "2024-01-02T03:04:05.000000Z" {
		t.Fatalf("Explicit fields were overwritten: %+v", entries[0])
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")

	Log(logPath, Entry{User: "alice", Operation: OpDump, Path: "/tmp/a.json"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &raw); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}
	for _, field := range []string{"source", "service", "outcome", "output_path"} {
		if _, ok := raw[field]; ok {
			t.Errorf("Expected empty field %q to be omitted", field)
		}
	}
	for _, field := range []string{"id", "ts", "user", "op", "path"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("Expected field %q to be present", field)
		}
	}
}

func TestLog_EmptyPathDisablesLogging(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	Log("", Entry{Operation: OpDump})

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("Expected nothing written, found %d entries", len(entries))
	}
}

func TestLog_UnwritablePathIsIgnored(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	// The parent is a regular file, so the log cannot be created.
	Log(filepath.Join(blocker, "audit.jsonl"), Entry{Operation: OpDump})
}

func TestNewEntry(t *testing.T) {
	entry := NewEntry(OpHtpasswd, "/tmp/webui-auth.json")
	if entry.Operation != OpHtpasswd {
		t.Errorf("Expected op %q, got %q", OpHtpasswd, entry.Operation)
	}
	if entry.Path != "/tmp/webui-auth.json" {
		t.Errorf("Expected path, got %q", entry.Path)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"id":"1","ts":"2024-01-15T10:30:00.000000Z","user":"alice","op":"set","path":"/a"}
{"id":"2","ts":"2024-01-15T10:31:00.000000Z","user":"bob","op":"check","path":"/a","service":"novnc","outcome":"match"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Service != "novnc" || entries[1].Outcome != "match" {
		t.Errorf("Unexpected second entry %+v", entries[1])
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"id":"1","op":"set"}
not json at all
{"id":"2","op":"du
{"id":"3","op":"dump"}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 valid entries, got %d", len(entries))
	}
	if entries[0].ID != "1" || entries[1].ID != "3" {
		t.Errorf("Unexpected entries %+v", entries)
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Expected no entries, got %d", len(entries))
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Fatalf("Expected nil entries, got %v", entries)
	}
}
