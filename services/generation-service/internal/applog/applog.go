// Package applog reads back the service's own JSON log file for the
// operational /api/logs endpoint.
package applog

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
)

const (
	DefaultLines = 50
	MaxLines     = 1000
)

// Entry is one log line. Lines that are not JSON carry only Raw.
type Entry struct {
	Timestamp string         `json:"timestamp,omitempty"`
	Level     string         `json:"level,omitempty"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Raw       string         `json:"raw,omitempty"`
}

// slog JSON handler keys that are lifted out of Data.
var reserved = map[string]bool{"time": true, "level": true, "msg": true}

type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Enabled reports whether a log file is configured at all.
func (f *File) Enabled() bool { return f.path != "" }

// Tail returns the last n entries in file order. A missing file has no entries.
func (f *File) Tail(n int) ([]Entry, error) {
	if n <= 0 {
		n = DefaultLines
	}
	if n > MaxLines {
		n = MaxLines
	}
	if f.path == "" {
		return []Entry{}, nil
	}
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	ring := make([]string, 0, n)
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(ring))
	for _, line := range ring {
		out = append(out, parseLine(line))
	}
	return out, nil
}

// Truncate empties the log file. The writer opened it with O_APPEND, so new
// records continue at the start.
func (f *File) Truncate() error {
	if f.path == "" {
		return nil
	}
	err := os.Truncate(f.path, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func parseLine(line string) Entry {
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return Entry{Raw: line}
	}
	e := Entry{}
	if v, ok := rec["time"].(string); ok {
		e.Timestamp = v
	}
	if v, ok := rec["level"].(string); ok {
		e.Level = v
	}
	if v, ok := rec["msg"].(string); ok {
		e.Message = v
	}
	for k, v := range rec {
		if reserved[k] {
			continue
		}
		if e.Data == nil {
			e.Data = map[string]any{}
		}
		e.Data[k] = v
	}
	return e
}
