package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/internal/codec"
	"github.com/PolarWolf314/vellum/internal/configs"
	"github.com/PolarWolf314/vellum/internal/session"
	"github.com/PolarWolf314/vellum/internal/utils"
)

func useTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := filepath.Join(t.TempDir(), "vellum")
	originalSettings := configs.UserVellumSettings
	configs.UserVellumSettings = configs.NewUserSettings(tempDir)
	t.Cleanup(func() {
		configs.UserVellumSettings = originalSettings
	})
	return filepath.Join(tempDir, "audit.jsonl")
}

func readLines(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLog_CreatesFile(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{InstallUUID: "test-uuid", Operation: "seal", Files: []string{"notes.txt"}})

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{Operation: "seal"})
	Log(Entry{Operation: "unseal"})
	Log(Entry{Operation: "rekey"})

	if lines := readLines(t, logPath); len(lines) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(lines))
	}
}

func TestLog_ValidJSON(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{
		InstallUUID: "test-uuid",
		Operation:   "seal",
		Files:       []string{"a.txt", "b.txt"},
		Format:      "v2",
	})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, logPath)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.InstallUUID != "test-uuid" {
		t.Errorf("Expected uuid test-uuid, got %s", parsed.InstallUUID)
	}
	if parsed.Operation != "seal" {
		t.Errorf("Expected operation seal, got %s", parsed.Operation)
	}
	if len(parsed.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(parsed.Files))
	}
	if parsed.Session != SessionID {
		t.Errorf("Expected session %s, got %s", SessionID, parsed.Session)
	}
	if parsed.User != utils.Identity() {
		t.Errorf("Expected user %s, got %s", utils.Identity(), parsed.User)
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{Operation: "seal"})

	var parsed Entry
	if err := json.Unmarshal([]byte(readLines(t, logPath)[0]), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}
	if !strings.HasSuffix(parsed.Timestamp, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", parsed.Timestamp)
	}
	if !strings.Contains(parsed.Timestamp, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", parsed.Timestamp)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := useTempSettings(t)

	Log(Entry{Operation: "rekey"})

	line := readLines(t, logPath)[0]
	for _, field := range []string{`"files"`, `"doc"`, `"format"`, `"encrypted"`, `"count"`} {
		if strings.Contains(line, field) {
			t.Errorf("Empty %s field should be omitted: %s", field, line)
		}
	}
}

func TestLog_NoSettings(t *testing.T) {
	originalSettings := configs.UserVellumSettings
	configs.UserVellumSettings = nil
	defer func() {
		configs.UserVellumSettings = originalSettings
	}()

	// Should silently do nothing.
	Log(Entry{Operation: "seal"})

	if LogPath() != "" {
		t.Errorf("Expected empty path, got %s", LogPath())
	}
}

func TestLogWithUser(t *testing.T) {
	useTempSettings(t)
	config, err := configs.EnsureConfig()
	if err != nil {
		t.Fatalf("EnsureConfig failed: %v", err)
	}

	entry := LogWithUser("seal")
	if entry.Operation != "seal" {
		t.Errorf("Expected operation seal, got %s", entry.Operation)
	}
	if entry.InstallUUID != config.User.InstallUUID {
		t.Errorf("Expected uuid %s, got %s", config.User.InstallUUID, entry.InstallUUID)
	}
}

func TestObserver(t *testing.T) {
	useTempSettings(t)
	observe := Observer("install-1")

	observe(session.Event{Op: session.OpNew, ID: 1})
	observe(session.Event{Op: session.OpSave, ID: 1, Path: "/doc.vlm", Encrypted: true, Format: codec.FormatV2})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "new" || len(entries[0].Files) != 0 || entries[0].Format != "" {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	save := entries[1]
	if save.Operation != "save" || save.DocumentID != 1 || save.InstallUUID != "install-1" {
		t.Errorf("Unexpected save entry %+v", save)
	}
	if len(save.Files) != 1 || save.Files[0] != "/doc.vlm" || save.Format != "v2" || !save.Encrypted {
		t.Errorf("Unexpected save details %+v", save)
	}
}

func TestReadEntries_NoLog(t *testing.T) {
	useTempSettings(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2026-01-15T10:30:00.123456Z","uuid":"a","op":"seal"}
{"ts":"2026-01-15T10:35:00.456789Z","uuid":"b","op":"unseal"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "seal" {
		t.Errorf("Expected first op seal, got %s", entries[0].Operation)
	}
	if entries[1].InstallUUID != "b" {
		t.Errorf("Expected second uuid b, got %s", entries[1].InstallUUID)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-15T10:30:00.123456Z","op":"seal"}
this is not valid json
{"ts":"2026-01-15T10:35:00.456789Z","op":"unseal"}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}
