package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome values.
const (
	OutcomeOK = "ok"
)

// Entry is one row in the activity log: a single attempted operation.
type Entry struct {
	Timestamp time.Time
	Session   uuid.UUID
	Action    string
	Account   int             // 0 when the action targets no account
	Amount    decimal.Decimal // zero when the action moves no money
	Outcome   string          // OutcomeOK or the error message
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,session,action,account,amount,outcome"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/activity-log.csv"
	colTimestamp = 0
	colSession   = 1
	colAction    = 2
	colAccount   = 3
	colAmount    = 4
	colOutcome   = 5
)

// Path returns the activity log location under dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339Nano)
	row[colSession] = e.Session.String()
	row[colAction] = e.Action
	if e.Account != 0 {
		row[colAccount] = strconv.Itoa(e.Account)
	}
	if !e.Amount.IsZero() {
		row[colAmount] = e.Amount.StringFixed(2)
	}
	row[colOutcome] = e.Outcome
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339Nano, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	session, err := uuid.Parse(record[colSession])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing session %q: %w", record[colSession], err)
	}

	var account int
	if record[colAccount] != "" {
		account, err = strconv.Atoi(record[colAccount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing account %q: %w", record[colAccount], err)
		}
	}

	var amount decimal.Decimal
	if record[colAmount] != "" {
		amount, err = decimal.NewFromString(record[colAmount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
	}

	return Entry{
		Timestamp: ts,
		Session:   session,
		Action:    record[colAction],
		Account:   account,
		Amount:    amount,
		Outcome:   record[colOutcome],
	}, nil
}

// Append writes entries to <dataDir>/logs/activity-log.csv, creating the file and header if needed.
func Append(dataDir string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(dataDir)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/activity-log.csv.
// Returns nil if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(Path(dataDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recorder collects entries for one session until they are flushed.
type Recorder struct {
	session uuid.UUID
	now     func() time.Time
	entries []Entry
}

// NewRecorder starts a session with a fresh random ID. A nil clock means time.Now.
func NewRecorder(clock func() time.Time) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{session: uuid.New(), now: clock}
}

// Session returns the session ID stamped on every entry.
func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// Record notes an attempted action. A nil err records OutcomeOK.
func (r *Recorder) Record(action string, account int, amount decimal.Decimal, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = err.Error()
	}
	r.entries = append(r.entries, Entry{
		Timestamp: r.now(),
		Session:   r.session,
		Action:    action,
		Account:   account,
		Amount:    amount,
		Outcome:   outcome,
	})
}

// Entries returns the entries recorded since the last Flush.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// Flush appends pending entries to the activity log under dataDir.
func (r *Recorder) Flush(dataDir string) error {
	if err := Append(dataDir, r.entries); err != nil {
		return err
	}
	r.entries = nil
	return nil
}
