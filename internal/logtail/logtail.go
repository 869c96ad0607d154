package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level classifies an activity line.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Entry is one parsed activity log line.
type Entry struct {
	Stamp     string
	Text      string
	RequestID string
	Level     Level
}

var (
	stampPattern   = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})(?:\.\d+)? `)
	requestPattern = regexp.MustCompile(`\(request ([0-9A-Za-z-]+)\)\s*$`)
	errorPattern   = regexp.MustCompile(`(?i)\b(fail(ed|ure)?|error|status [45]\d\d)\b`)
)

// ParseLine splits a line written by the standard logger into its
// timestamp, message and trailing request id. Lines that do not start with
// a timestamp are returned as plain text.
func ParseLine(line string) Entry {
	var e Entry
	rest := line
	if m := stampPattern.FindStringSubmatch(line); m != nil {
		e.Stamp = m[1]
		rest = line[len(m[0]):]
	}
	if m := requestPattern.FindStringSubmatchIndex(rest); m != nil {
		e.RequestID = rest[m[2]:m[3]]
		rest = strings.TrimSpace(rest[:m[0]])
	}
	e.Text = rest
	if errorPattern.MatchString(rest) {
		e.Level = LevelError
	}
	return e
}

// ParseLines parses every line, preserving order.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = ParseLine(line)
	}
	return out
}
