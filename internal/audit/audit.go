package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/vellum/internal/configs"
	"github.com/PolarWolf314/vellum/internal/session"
	"github.com/PolarWolf314/vellum/internal/utils"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp   string `json:"ts"`      // UTC, microsecond precision.
	InstallUUID string `json:"uuid"`    // Installation that performed the action.
	Session     string `json:"session"` // Process that performed the action.
	User        string `json:"user"`    // user@host that performed the action.
	Operation   string `json:"op"`      // Operation name.

	// Optional fields depending on operation.
	Files      []string `json:"files,omitempty"`     // For seal/unseal/rekey.
	DocumentID uint64   `json:"doc,omitempty"`       // For session operations.
	Format     string   `json:"format,omitempty"`    // Envelope format written or read.
	Encrypted  bool     `json:"encrypted,omitempty"` // For session operations.
	Count      int      `json:"count,omitempty"`     // For close-all.
}

// SessionID identifies this process in audit entries.
var SessionID = uuid.New().String()

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.Session == "" {
		entry.Session = SessionID
	}
	if entry.User == "" {
		entry.User = utils.Identity()
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the install UUID populated from config.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}

	config, err := configs.LoadConfig()
	if err != nil {
		return entry
	}

	entry.InstallUUID = config.User.InstallUUID

	return entry
}

// Observer returns a session.Observer that records every completed
// transition of a document session.
func Observer(installUUID string) session.Observer {
	return func(e session.Event) {
		entry := Entry{
			InstallUUID: installUUID,
			Operation:   string(e.Op),
			DocumentID:  e.ID,
			Encrypted:   e.Encrypted,
		}
		if e.Path != "" {
			entry.Files = []string{e.Path}
		}
		if e.Encrypted {
			entry.Format = e.Format.String()
		}
		Log(entry)
	}
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	if configs.UserVellumSettings == nil {
		return ""
	}
	return configs.UserVellumSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
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
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
