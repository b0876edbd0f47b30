// Package history persists executed command lines and their results.
//
// Records live in a single bbolt bucket keyed by insertion sequence,
// encoded as JSON documents. Persistence is fire-and-forget: Record
// logs and swallows failures so history can never block or alter shell
// control flow.
package history

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	bolt "go.etcd.io/bbolt"

	"github.com/dshills/aish/internal/executor"
)

var bucketName = []byte("history")

// maxCapturedOutput bounds how much of a command's output is persisted
// per record.
const maxCapturedOutput = 16 * 1024

// Logger receives swallowed persistence failures.
type Logger interface {
	Warn(format string, args ...any)
}

// Entry is one recorded command.
type Entry struct {
	ID       string
	Time     time.Time
	Line     string
	Stdout   string
	ExitCode int
}

// Store is a bbolt-backed history store.
type Store struct {
	db  *bolt.DB
	log Logger
}

// Open opens (or creates) the history database at path.
func Open(path string, log Logger) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one executed line and its result. Failures are
// logged and swallowed. When the command used the alternate screen its
// stdout is TUI redraw noise and is not persisted.
func (s *Store) Record(line string, res executor.Result) {
	doc, _ := sjson.Set("", "id", uuid.NewString())
	doc, _ = sjson.Set(doc, "time", time.Now().UTC().Format(time.RFC3339Nano))
	doc, _ = sjson.Set(doc, "line", line)
	doc, _ = sjson.Set(doc, "exitCode", res.ExitCode)
	doc, _ = sjson.Set(doc, "altScreen", res.UsedAltScreen)
	if !res.UsedAltScreen {
		doc, _ = sjson.Set(doc, "stdout", clip(res.Stdout))
	}
	doc, _ = sjson.Set(doc, "stderr", clip(res.Stderr))

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return b.Put(key[:], []byte(doc))
	})
	if err != nil && s.log != nil {
		s.log.Warn("history: record failed: %v", err)
	}
}

// Recent returns up to n most recent entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			entries = append(entries, decodeEntry(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RecentContext renders the n most recent commands, oldest first, as
// plain text for the assistant collaborator.
func (s *Store) RecentContext(n int) string {
	entries, err := s.Recent(n)
	if err != nil {
		return ""
	}
	var out []byte
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		out = append(out, "$ "...)
		out = append(out, e.Line...)
		out = append(out, '\n')
		if e.Stdout != "" {
			out = append(out, e.Stdout...)
			if e.Stdout[len(e.Stdout)-1] != '\n' {
				out = append(out, '\n')
			}
		}
	}
	return string(out)
}

func decodeEntry(doc []byte) Entry {
	ts, _ := time.Parse(time.RFC3339Nano, gjson.GetBytes(doc, "time").String())
	return Entry{
		ID:       gjson.GetBytes(doc, "id").String(),
		Time:     ts,
		Line:     gjson.GetBytes(doc, "line").String(),
		Stdout:   gjson.GetBytes(doc, "stdout").String(),
		ExitCode: int(gjson.GetBytes(doc, "exitCode").Int()),
	}
}

func clip(s string) string {
	if len(s) > maxCapturedOutput {
		return s[:maxCapturedOutput]
	}
	return s
}
