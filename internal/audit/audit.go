package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/PolarWolf314/helm-secrets/internal/logging"
	"github.com/PolarWolf314/helm-secrets/internal/utils"

	"github.com/gofrs/flock"
)

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single line of the trail.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local user running helm-secrets.
	Operation string `json:"op"`

	// Optional fields depending on operation.
	Files        []string `json:"files,omitempty"`         // Secrets files touched.
	Command      []string `json:"command,omitempty"`       // For the helm wrappers.
	RemovedCount int      `json:"removed_count,omitempty"` // For clean.
	DryRun       bool     `json:"dry_run,omitempty"`       // For clean.
	ExitCode     int      `json:"exit_code"`
	Error        string   `json:"error,omitempty"`
}

// Trail appends entries to the file at Path. A nil Trail or an empty Path
// records nothing.
type Trail struct {
	Path   string
	Logger logger.Logger
}

// New returns a Trail writing to path.
func New(path string, log logger.Logger) *Trail {
	return &Trail{Path: path, Logger: log}
}

// Enabled reports whether entries are recorded.
func (t *Trail) Enabled() bool {
	return t != nil && t.Path != ""
}

// NewEntry returns an entry for op with the user filled in.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	return entry
}

// Record completes entry with the outcome err and appends it.
func (t *Trail) Record(entry Entry, err error) {
	if !t.Enabled() {
		return
	}
	if err != nil {
		entry.Error = err.Error()
	}
	t.Log(entry)
}

// Log appends entry to the trail. Failures are reported as warnings only.
func (t *Trail) Log(entry Entry) {
	if !t.Enabled() {
		return
	}
	if err := t.append(entry); err != nil {
		t.Logger.Warnf("Cannot write activity trail %s: %v", t.Path, err)
	}
}

func (t *Trail) append(entry Entry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(t.Path), 0700); err != nil {
		return err
	}

	// Concurrent helm-secrets runs may share one trail.
	lock := flock.New(t.Path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking: %w", err)
	}
	defer lock.Unlock()

	// #nosec G302 -- the trail holds file names only, never secret values.
	f, err := os.OpenFile(t.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadEntries reads all entries from the trail at path.
// Returns an empty slice if the trail doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
